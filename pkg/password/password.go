package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a bcrypt hash of the plain password using the given cost.
func Hash(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify safely compares a bcrypt hash and a plain password.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
