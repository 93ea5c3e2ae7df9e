package source

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	body := `[
		{"id":1,"name":"Mission Chinese Food","cuisine_type":"Asian","neighborhood":"Manhattan","latlng":{"lat":40.713829,"lng":-73.989667},"photograph":"1","address":"171 E Broadway"},
		{"id":2,"name":"Emily","cuisine_type":"Pizza","neighborhood":"Brooklyn","latlng":{"lat":40.683555,"lng":-73.966393}}
	]`

	got, err := Decode(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Decode() returned %d restaurants, want 2", len(got))
	}
	if got[0].Photograph != "1" || got[0].LatLng.Lat != 40.713829 {
		t.Errorf("Decode()[0] = %+v", got[0])
	}
	if got[1].HasPhotograph() {
		t.Errorf("Decode()[1] should have no photograph, got %q", got[1].Photograph)
	}
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Decode() returned %d restaurants, want 0", len(got))
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html", "<html>oops</html>"},
		{"truncated", `[{"id":1,`},
		{"object", `{"id":1}`},
		{"null", `null`},
		{"wrong type", `[{"id":"one"}]`},
		{"empty", ``},
		{"trailing garbage", `[{"id":1,"name":"a"}] <html>oops</html>`},
		{"second array", `[{"id":1}][{"id":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Decode() error = %v, want ErrDecode", err)
			}
		})
	}
}
