package config

import "github.com/glorpus-work/mlcat/pkg/auth"

// ToAuthenticator converts the profile to an Authenticator that attaches the
// profile's API key to each request as a query parameter.
func (p *ProfileConfig) ToAuthenticator() auth.Authenticator {
	return auth.APIKeyAuth{Key: p.APIKey}
}

// ToAuthMap converts the profile configurations to a map of profile names to
// Authenticators. Returns an empty map if no profiles are configured.
func (c *Config) ToAuthMap() map[string]auth.Authenticator {
	results := make(map[string]auth.Authenticator, len(c.Profiles))
	for _, profile := range c.Profiles {
		results[profile.Name] = profile.ToAuthenticator()
	}
	return results
}
