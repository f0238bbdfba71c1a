package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("pass1234", 4)
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	if hash == "pass1234" {
		t.Fatal("hash must not equal the plain password")
	}

	if !Verify(hash, "pass1234") {
		t.Error("Verify() should accept the original password")
	}
	if Verify(hash, "wrongpass1") {
		t.Error("Verify() should reject a wrong password")
	}
	if Verify("not-a-hash", "pass1234") {
		t.Error("Verify() should reject a malformed hash")
	}
}
