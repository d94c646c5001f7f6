package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Route paths served by the gap service.
const (
	AnalyzeRoute   = "/analyze-resume"
	ResourcesRoute = "/learning-resources"
	ProfilesRoute  = "/linkedin-profiles"
	HealthRoute    = "/health"
)

// Rule limits one method and path. A Path ending in "/" matches by prefix.
type Rule struct {
	Method string
	Path   string
	Limit  int           // requests per Window; <= 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Default applies to requests no rule matches. Method and Path are ignored.
	Default         Rule
	Rules           []Rule
	Exempt          []string // "METHOD /path" entries that are never limited
	Allow           map[string]bool
	Deny            map[string]bool
	CleanupInterval time.Duration
	IdleTTL         time.Duration
}

// LoadConfig reads rate limiting configuration from RATE_LIMIT_* environment
// variables.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled: true,
		Default: Rule{
			Limit:  envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
			Window: envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		},
		Rules:           StageRules(),
		Exempt:          []string{"GET " + HealthRoute},
		Allow:           clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Deny:            clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         envDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
	}
}

// StageRules returns the rules for the three stage routes. Each one calls the
// LLM or a paid search API, so they share one tier set by
// RATE_LIMIT_STAGE_LIMIT, RATE_LIMIT_STAGE_WINDOW and RATE_LIMIT_STAGE_BURST.
func StageRules() []Rule {
	limit := envInt("RATE_LIMIT_STAGE_LIMIT", 30)
	window := envDuration("RATE_LIMIT_STAGE_WINDOW", time.Hour)
	burst := envInt("RATE_LIMIT_STAGE_BURST", 5)

	rules := make([]Rule, 0, 3)
	for _, path := range []string{AnalyzeRoute, ResourcesRoute, ProfilesRoute} {
		rules = append(rules, Rule{Method: "POST", Path: path, Limit: limit, Window: window, Burst: burst})
	}
	return rules
}

// ruleFor returns the rule governing method and path. Exact matches win over
// prefix matches; ok is false when the request is exempt or unlimited.
func (c *Config) ruleFor(method, path string) (Rule, bool) {
	for _, e := range c.Exempt {
		if e == method+" "+path {
			return Rule{}, false
		}
	}

	rule, found := Rule{}, false
	for _, r := range c.Rules {
		if r.Method == method && r.Path == path {
			rule, found = r, true
			break
		}
	}
	if !found {
		for _, r := range c.Rules {
			if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
				rule, found = r, true
				break
			}
		}
	}
	if !found {
		rule = c.Default
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return Rule{}, false
	}
	if rule.Burst <= 0 {
		rule.Burst = rule.Limit
	}
	return rule, true
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// clientSet parses a comma-separated list of client addresses.
func clientSet(list string) map[string]bool {
	out := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			out[ip] = true
		}
	}
	return out
}
