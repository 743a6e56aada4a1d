package checksum

import "testing"

func TestZeroThenHashIgnoresWindowContents(t *testing.T) {
	a := make([]byte, 64)
	for i := range a {
		a[i] = byte(i)
	}
	b := append([]byte(nil), a...)
	// Differ only inside the window that gets zeroed.
	b[10] = 0xFF
	b[20] = 0xAB

	if ZeroThenHash(a, 8, 24) != ZeroThenHash(b, 8, 24) {
		t.Fatal("digests should match when only the zeroed window differs")
	}
}

func TestVerifyDetectsOutsideWindowMutation(t *testing.T) {
	a := make([]byte, 64)
	want := ZeroThenHash(a, 8, 24)

	mutated := append([]byte(nil), a...)
	mutated[40] ^= 0x01

	if Verify(mutated, 8, 24, want) {
		t.Fatal("expected verification to fail after mutating bytes outside the checksum window")
	}
}

func TestSum256Deterministic(t *testing.T) {
	data := []byte("lp-metadata")
	if Sum256(data) != Sum256(data) {
		t.Fatal("Sum256 should be deterministic")
	}
}
