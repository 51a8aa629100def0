package validation

import "fmt"

// ValidateCredentials checks that both credential fields are present.
// Schema validation beyond presence is intentionally not performed here.
func ValidateCredentials(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

// ValidateToken checks that a token field is present
func ValidateToken(token string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}
	return nil
}
