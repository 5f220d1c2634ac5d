package flow

import (
	"reflect"
	"testing"
)

func TestNormalizeScope(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		// Un checkbox único llega escalar; debe dar el mismo set que la lista
		{"escalar", []string{"openid"}, []string{"openid"}},
		{"lista de uno", []string{"openid"}, []string{"openid"}},
		{"varios", []string{"openid", "offline"}, []string{"openid", "offline"}},
		{"nil", nil, []string{}},
		{"vacio", []string{}, []string{}},
		{"blancos", []string{"", "  "}, []string{}},
		{"trim", []string{" openid ", "offline"}, []string{"openid", "offline"}},
		{"dedup preserva orden", []string{"openid", "offline", "openid"}, []string{"openid", "offline"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeScope(tc.in)
			if got == nil {
				t.Fatal("result must never be nil")
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeScope(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeScope_Idempotent(t *testing.T) {
	in := []string{" openid ", "offline", "openid", ""}
	once := NormalizeScope(in)
	twice := NormalizeScope(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent: %v vs %v", once, twice)
	}
}
