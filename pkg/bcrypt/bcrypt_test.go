package bcrypt

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyHash(hash) {
		t.Fatalf("hash %q does not look like bcrypt", hash)
	}
	if err := ComparePassword(hash, "s3cret!"); err != nil {
		t.Errorf("matching password rejected: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestVerifyHashRejectsPlainText(t *testing.T) {
	if VerifyHash("password") {
		t.Error("plain text accepted as hash")
	}
}
