package normalization

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
)

func TestToNumber(t *testing.T) {
	huge, _ := new(big.Int).SetString("12345678901234", 10)
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"int64", int64(42), 42},
		{"int", 7, 7},
		{"float64", 50.25, 50.25},
		{"float32", float32(1.5), 1.5},
		{"uint8", uint8(3), 3},
		{"numeric string", "300", 300},
		{"padded string", "  12.5 ", 12.5},
		{"garbage string", "three hundred", 0},
		{"empty string", "", 0},
		{"json number", json.Number("99"), 99},
		{"big int", huge, 12345678901234},
		{"nil big int", (*big.Int)(nil), 0},
		{"split pair small", map[string]any{"low": int64(150), "high": int64(0)}, 150},
		{"split pair large", map[string]any{"low": int64(0), "high": int64(1)}, 4294967296},
		{"split pair negative", map[string]any{"low": int64(-1), "high": int64(-1)}, -1},
		{"map without pair", map[string]any{"value": 3}, 0},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
		{"bool", true, 1},
		{"struct", struct{}{}, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := ToNumber(tc.in); got != tc.want {
				t.Fatalf("ToNumber(%v): want=%v got=%v", tc.in, tc.want, got)
			}
		})
	}
}

func TestToIntKeepsPrecision(t *testing.T) {
	if got := ToInt(int64(math.MaxInt64)); got != math.MaxInt64 {
		t.Fatalf("max int64: got=%d", got)
	}
	if got := ToInt("9007199254740993"); got != 9007199254740993 {
		t.Fatalf("string beyond 2^53: got=%d", got)
	}
	if got := ToInt(12.9); got != 12 {
		t.Fatalf("float truncation: want=12 got=%d", got)
	}
	if got := ToInt(math.Inf(-1)); got != 0 {
		t.Fatalf("non-finite: want=0 got=%d", got)
	}
	if got := ToInt(map[string]any{"low": int64(5), "high": int64(2)}); got != 2<<32|5 {
		t.Fatalf("split pair: got=%d", got)
	}
}

func TestParseIntRejectsNonNumbers(t *testing.T) {
	good := []struct {
		in   any
		want int64
	}{
		{float64(90), 90},
		{90.7, 90},
		{"12", 12},
		{" 12.9 ", 12},
		{json.Number("40"), 40},
		{int64(-3), -3},
		{map[string]any{"low": int64(5), "high": int64(0)}, 5},
	}
	for _, tc := range good {
		got, ok := ParseInt(tc.in)
		if !ok || got != tc.want {
			t.Fatalf("ParseInt(%#v): want=%d got=%d ok=%v", tc.in, tc.want, got, ok)
		}
	}

	bad := []any{nil, true, "", "abc", math.NaN(), math.Inf(1), map[string]any{"low": 1}, []any{1}}
	for _, in := range bad {
		if _, ok := ParseInt(in); ok {
			t.Fatalf("ParseInt(%#v): want rejection", in)
		}
	}
}

func TestParseInputString(t *testing.T) {
	if got := ParseInputString("  Want-To-Read "); got != "want-to-read" {
		t.Fatalf("got=%q", got)
	}
	if ParseInputStringPtr(nil) != nil {
		t.Fatalf("nil pointer should stay nil")
	}
}

func TestFirstName(t *testing.T) {
	cases := map[string]string{"Ada Lovelace": "Ada", "  Grace  ": "Grace", "": ""}
	for in, want := range cases {
		if got := FirstName(in); got != want {
			t.Fatalf("FirstName(%q): want=%q got=%q", in, want, got)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Chess, ,Hiking,chess ,  ")
	if len(got) != 2 || got[0] != "Chess" || got[1] != "Hiking" {
		t.Fatalf("SplitList: got=%q", got)
	}
	if got := SplitList(""); got == nil || len(got) != 0 {
		t.Fatalf("empty: want empty slice got=%#v", got)
	}
}
