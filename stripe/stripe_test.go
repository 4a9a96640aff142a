package stripe

import (
	"strings"
	"testing"
)

func TestNewTokenFormat(t *testing.T) {
	id := newToken("pi_")
	if !strings.HasPrefix(id, "pi_") {
		t.Errorf("token %q missing pi_ prefix", id)
	}
	if len(id) != len("pi_")+32 {
		t.Errorf("token %q has length %d, want %d", id, len(id), len("pi_")+32)
	}
	if strings.Contains(id, "-") {
		t.Errorf("token %q must be dash-free", id)
	}
	if id == newToken("pi_") {
		t.Error("two tokens collided")
	}
}
