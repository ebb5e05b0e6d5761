package store_test

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/storechain/storechain/foundation/store"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	owner  = store.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	caller = store.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
)

// =============================================================================

func Test_GetSet(t *testing.T) {
	t.Log("Given the need to validate reading and writing a store.")
	{
		t.Logf("\tTest 0:\tWhen creating a store with the value 123.")
		{
			initial, err := store.ParseValue("123")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to parse the initial value: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to parse the initial value.", success)

			st := store.New(owner, initial, nil)

			if got := st.Get(); got.String() != "123" {
				t.Fatalf("\t%s\tTest 0:\tShould read back the initial value: got %s, exp 123.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould read back the initial value.", success)

			next, err := store.ParseValue("456")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to parse the new value: %v", failed, err)
			}

			st.Set(caller, next)

			if got := st.Get(); got.String() != "456" {
				t.Fatalf("\t%s\tTest 0:\tShould read back the new value: got %s, exp 456.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould read back the new value.", success)

			// Setting the same value again must behave like setting it once.
			st.Set(caller, next)

			if got := st.Get(); !got.Equal(next) {
				t.Fatalf("\t%s\tTest 0:\tShould read back the same value after a repeated set: got %s.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould read back the same value after a repeated set.", success)
		}
	}
}

func Test_Isolation(t *testing.T) {
	t.Log("Given the need to validate independent stores never share state.")
	{
		t.Logf("\tTest 0:\tWhen creating two stores with different values.")
		{
			v1, _ := store.ParseValue("123")
			v2, _ := store.ParseValue("456")

			stA := store.New(owner, v1, nil)
			stB := store.New(owner, v2, nil)

			if got := stA.Get(); got.String() != "123" {
				t.Fatalf("\t%s\tTest 0:\tShould read 123 from store A: got %s.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould read 123 from store A.", success)

			if got := stB.Get(); got.String() != "456" {
				t.Fatalf("\t%s\tTest 0:\tShould read 456 from store B: got %s.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould read 456 from store B.", success)

			v3, _ := store.ParseValue("789")
			stA.Set(caller, v3)

			if got := stB.Get(); got.String() != "456" {
				t.Fatalf("\t%s\tTest 0:\tShould still read 456 from store B after writing store A: got %s.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould still read 456 from store B after writing store A.", success)
		}
	}
}

func Test_Domain(t *testing.T) {
	maxValue := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	type table struct {
		name  string
		input *big.Int
		valid bool
	}

	tt := []table{
		{name: "zero", input: big.NewInt(0), valid: true},
		{name: "basic", input: big.NewInt(123), valid: true},
		{name: "max", input: maxValue, valid: true},
		{name: "negative", input: big.NewInt(-1), valid: false},
		{name: "overflow", input: new(big.Int).Add(maxValue, big.NewInt(1)), valid: false},
		{name: "nil", input: nil, valid: false},
	}

	t.Log("Given the need to validate the unsigned 256 bit domain boundary.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the %s input.", testID, tst.name)
			{
				f := func(t *testing.T) {
					v, err := store.ToValue(tst.input)

					switch tst.valid {
					case true:
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould accept an in-domain value: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould accept an in-domain value.", success, testID)

						if v.BigInt().Cmp(tst.input) != 0 {
							t.Fatalf("\t%s\tTest %d:\tShould round trip the value: got %s, exp %s.", failed, testID, v.BigInt(), tst.input)
						}
						t.Logf("\t%s\tTest %d:\tShould round trip the value.", success, testID)

					case false:
						if !errors.Is(err, store.ErrDomainViolation) {
							t.Fatalf("\t%s\tTest %d:\tShould reject an out-of-domain value with a domain violation: got %v.", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould reject an out-of-domain value with a domain violation.", success, testID)
					}
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_ParseValue(t *testing.T) {
	type table struct {
		name  string
		input string
		valid bool
		exp   string
	}

	tt := []table{
		{name: "decimal", input: "123", valid: true, exp: "123"},
		{name: "hex", input: "0x1c8", valid: true, exp: "456"},
		{name: "garbage", input: "12three", valid: false},
		{name: "negative", input: "-1", valid: false},
		{name: "empty", input: "", valid: false},
		{name: "overflow", input: strings.Repeat("9", 80), valid: false},
	}

	t.Log("Given the need to validate parsing values from their text form.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen parsing %q.", testID, tst.input)
			{
				f := func(t *testing.T) {
					v, err := store.ParseValue(tst.input)

					if !tst.valid {
						if !errors.Is(err, store.ErrDomainViolation) {
							t.Fatalf("\t%s\tTest %d:\tShould reject the input with a domain violation: got %v.", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould reject the input with a domain violation.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould parse the input: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould parse the input.", success, testID)

					if v.String() != tst.exp {
						t.Fatalf("\t%s\tTest %d:\tShould produce the right value: got %s, exp %s.", failed, testID, v, tst.exp)
					}
					t.Logf("\t%s\tTest %d:\tShould produce the right value.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Events(t *testing.T) {
	t.Log("Given the need to validate the diagnostic side-channel.")
	{
		t.Logf("\tTest 0:\tWhen creating, writing, and reading a store with an event handler.")
		{
			var events []string
			ev := func(v string, args ...any) {
				events = append(events, fmt.Sprintf(v, args...))
			}

			initial, _ := store.ParseValue("123")
			next, _ := store.ParseValue("456")

			st := store.New(owner, initial, ev)
			st.Set(caller, next)
			st.Get()

			if len(events) != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould capture three events: got %d.", failed, len(events))
			}
			t.Logf("\t%s\tTest 0:\tShould capture three events.", success)

			if !strings.Contains(events[0], string(owner)) || !strings.Contains(events[0], "123") {
				t.Fatalf("\t%s\tTest 0:\tShould record the owner and initial value on create: got %q.", failed, events[0])
			}
			t.Logf("\t%s\tTest 0:\tShould record the owner and initial value on create.", success)

			if !strings.Contains(events[1], string(caller)) || !strings.Contains(events[1], "456") {
				t.Fatalf("\t%s\tTest 0:\tShould record the caller and new value on set: got %q.", failed, events[1])
			}
			t.Logf("\t%s\tTest 0:\tShould record the caller and new value on set.", success)

			if !strings.Contains(events[2], "456") {
				t.Fatalf("\t%s\tTest 0:\tShould record the value returned on get: got %q.", failed, events[2])
			}
			t.Logf("\t%s\tTest 0:\tShould record the value returned on get.", success)

			// The handler observes but never mutates.
			if got := st.Get(); got.String() != "456" {
				t.Fatalf("\t%s\tTest 0:\tShould hold the same value with events enabled: got %s.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould hold the same value with events enabled.", success)
		}
	}
}
