package service

import (
	"strings"

	"github.com/Rohityadav8366/service-provider-platform/internal/domain"
)

const passwordSymbols = "!@#$%^&+="

// passwordPolicy: minimum 8 chars with at least one digit, one lowercase,
// one uppercase and one symbol from the fixed allowed set.
func passwordPolicy(pw string) string {
	if len(pw) < 8 {
		return "password must be at least 8 characters"
	}
	var digit, lower, upper, symbol bool
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !digit || !lower || !upper || !symbol {
		return "password must contain at least one digit, one lowercase, one uppercase, and one special character"
	}
	return ""
}

func validateRegistration(in RegisterInput) *domain.Error {
	fields := map[string]string{}
	if msg := passwordPolicy(in.Password); msg != "" {
		fields["password"] = msg
	}
	if !in.Role.Valid() {
		fields["role"] = "role must be one of CUSTOMER, PROVIDER, ADMIN"
	}
	if in.Role == domain.RoleProvider && strings.TrimSpace(in.Specialization) == "" {
		fields["specialization"] = "specialization is required for providers"
	}
	if len(fields) > 0 {
		return domain.Validation(fields)
	}
	return nil
}
