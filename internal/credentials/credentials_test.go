package credentials

import "testing"

func TestHashedSecret(t *testing.T) {
	hash, err := Hash("pass123")
	if err != nil {
		t.Fatal(err)
	}
	v := HashedSecret{}
	if !v.Verify(hash, "pass123") {
		t.Error("correct password rejected")
	}
	if v.Verify(hash, "wrong") {
		t.Error("wrong password accepted")
	}
	if v.Verify("", "pass123") {
		t.Error("empty stored hash accepted")
	}
}

func TestDerivedFromField(t *testing.T) {
	v := DerivedFromField{}
	if !v.Verify("9876543210", "9876543210") {
		t.Error("matching value rejected")
	}
	if v.Verify("9876543210", "1234567890") {
		t.Error("mismatched value accepted")
	}
	if v.Verify("", "") {
		t.Error("empty stored credential accepted")
	}
}
