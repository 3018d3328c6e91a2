package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/formguard/framework/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

type button struct {
	disabled bool
	calls    int
}

func (b *button) SetDisabled(d bool) {
	b.disabled = d
	b.calls++
}

func newValidator(t *testing.T, form validation.MapForm, fields []validation.Field, opts ...validation.Option) *validation.Validator {
	t.Helper()
	opts = append([]validation.Option{validation.WithRegistry(validation.NewBuiltinRegistry())}, opts...)
	v, err := validation.New(form, fields, opts...)
	require.NoError(t, err)
	return v
}

func passwordForm() (validation.MapForm, []validation.Field) {
	return validation.MapForm{"password": "", "confirm": ""}, []validation.Field{
		{Name: "password", Rules: "required|minLen:5", Sync: "confirm"},
		{Name: "confirm", Rules: "required|confirm:password"},
	}
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNew_AbortsOnConfigurationError(t *testing.T) {
	v, err := validation.New(validation.MapForm{"a": ""}, []validation.Field{{Name: "a", Rules: "nope"}})
	assert.Nil(t, v)
	assert.ErrorIs(t, err, validation.ErrUnknownRule)
}

func TestNew_RejectsUnknownEventsMode(t *testing.T) {
	v, err := validation.New(validation.MapForm{}, nil, validation.WithEvents("hover"))
	assert.Nil(t, v)
	assert.ErrorIs(t, err, validation.ErrInvalidEventsMode)
}

func TestNew_Defaults(t *testing.T) {
	v, err := validation.New(validation.MapForm{"a": ""}, []validation.Field{{Name: "a", Rules: "required"}})
	require.NoError(t, err)
	assert.Equal(t, validation.EventsAll, v.Events())
	assert.False(t, v.IsError())
	assert.Empty(t, v.Values())
}

// ── evaluation ───────────────────────────────────────────────────────────────

func TestEvaluate_UndeclaredField(t *testing.T) {
	v := newValidator(t, validation.MapForm{"a": ""}, []validation.Field{{Name: "a", Rules: "required"}})
	assert.ErrorIs(t, v.Evaluate("b", "x"), validation.ErrFieldNotFound)
}

func TestEvaluate_KeepsRulesResolvedAtCompile(t *testing.T) {
	reg := validation.NewBuiltinRegistry()
	v, err := validation.New(validation.MapForm{"a": ""},
		[]validation.Field{{Name: "a", Rules: "required|minLen:4"}},
		validation.WithRegistry(reg))
	require.NoError(t, err)

	require.NoError(t, reg.Register(validation.Rule{
		Name:    "minLen",
		Message: "Between $1 and $2",
		Arity:   2,
		Check: func(value string, params []string, _ validation.Values) bool {
			return params[0] != "" && params[1] != ""
		},
	}, validation.WithReplace()))
	require.NoError(t, reg.SetMessage("required", "changed"))

	require.NotPanics(t, func() { require.NoError(t, v.Evaluate("a", "abc")) })
	assert.Equal(t, map[string]string{"minLen": "Must be at least 4 characters"}, v.FieldErrors("a"))

	require.NoError(t, v.Evaluate("a", ""))
	msg, _ := v.Message("a")
	assert.Equal(t, "This field is required", msg)

	// validators compiled afterwards see the replacement
	_, err = validation.New(validation.MapForm{"b": ""},
		[]validation.Field{{Name: "b", Rules: "minLen:4"}},
		validation.WithRegistry(reg))
	assert.ErrorIs(t, err, validation.ErrArityMismatch)
}

func TestEvaluate_IdempotentForPassingRequiredField(t *testing.T) {
	v := newValidator(t, validation.MapForm{"name": ""}, []validation.Field{{Name: "name", Rules: "required|minLen:2"}})

	for i := 0; i < 3; i++ {
		require.NoError(t, v.Evaluate("name", "Alice"))
		assert.Nil(t, v.FieldErrors("name"))
		assert.False(t, v.IsError())
	}
}

func TestEvaluate_RecordsAllFailingRules(t *testing.T) {
	v := newValidator(t, validation.MapForm{"age": ""}, []validation.Field{{Name: "age", Rules: "required|number|min:10"}})

	require.NoError(t, v.Evaluate("age", "abc"))
	assert.Equal(t, map[string]string{
		"number": "Must be a number",
		"min":    "Must be at least 10",
	}, v.FieldErrors("age"))

	require.NoError(t, v.Evaluate("age", "12"))
	assert.Nil(t, v.FieldErrors("age"))
	assert.Empty(t, v.Errors(), "the field key is removed once valid")
}

func TestEvaluate_OrderSensitivity(t *testing.T) {
	// No single value can break both built-in bounds, so maxLen always fails here.
	reg := validation.NewBuiltinRegistry()
	require.NoError(t, reg.Register(validation.Rule{
		Name: "maxLen", Message: "Must be at most $1 characters", Arity: 1,
		Check: func(string, []string, validation.Values) bool { return false },
	}, validation.WithReplace()))
	v := newValidator(t, validation.MapForm{"first": "", "second": ""}, []validation.Field{
		{Name: "first", Rules: "minLen:4|maxLen:5"},
		{Name: "second", Rules: "maxLen:5|minLen:4"},
	}, validation.WithRegistry(reg))

	require.NoError(t, v.Evaluate("first", "ab"))
	require.NoError(t, v.Evaluate("second", "ab"))

	first, ok := v.Message("first")
	require.True(t, ok)
	assert.Equal(t, "Must be at least 4 characters", first)

	second, ok := v.Message("second")
	require.True(t, ok)
	assert.Equal(t, "Must be at most 5 characters", second)

	assert.Len(t, v.FieldErrors("first"), 2, "later errors stay in the store")
	assert.Equal(t, map[string]string{
		"first":  "Must be at least 4 characters",
		"second": "Must be at most 5 characters",
	}, v.Visible())
}

func TestEvaluate_EarlierErrorHidesLaterUntilCleared(t *testing.T) {
	v := newValidator(t, validation.MapForm{"name": ""}, []validation.Field{{Name: "name", Rules: "required|minLen:4"}})

	require.NoError(t, v.Evaluate("name", ""))
	msg, _ := v.Message("name")
	assert.Equal(t, "This field is required", msg)

	require.NoError(t, v.Evaluate("name", "ab"))
	msg, _ = v.Message("name")
	assert.Equal(t, "Must be at least 4 characters", msg)
}

func TestEvaluate_EmptyValueExemption(t *testing.T) {
	t.Run("optional email", func(t *testing.T) {
		v := newValidator(t, validation.MapForm{"email": ""}, []validation.Field{{Name: "email", Rules: "email"}})
		require.NoError(t, v.Evaluate("email", ""))
		require.NoError(t, v.Evaluate("email", "   "))
		assert.False(t, v.IsError())
	})

	t.Run("required email", func(t *testing.T) {
		v := newValidator(t, validation.MapForm{"email": ""}, []validation.Field{{Name: "email", Rules: "required|email"}})
		require.NoError(t, v.Evaluate("email", ""))
		assert.Equal(t, map[string]string{"required": "This field is required"}, v.FieldErrors("email"))
	})

	t.Run("optional email still checked once filled", func(t *testing.T) {
		v := newValidator(t, validation.MapForm{"email": ""}, []validation.Field{{Name: "email", Rules: "email"}})
		require.NoError(t, v.Evaluate("email", "nope"))
		assert.True(t, v.IsError())
	})
}

func TestEvaluate_SnapshotRecordedAfterRules(t *testing.T) {
	reg := validation.NewBuiltinRegistry()
	var seen []string
	require.NoError(t, reg.Register(validation.Rule{
		Name: "spy", Message: "x",
		Check: func(_ string, _ []string, values validation.Values) bool {
			seen = append(seen, values.Lookup("name"))
			return true
		},
	}))

	v := newValidator(t, validation.MapForm{"name": ""}, []validation.Field{{Name: "name", Rules: "spy"}}, validation.WithRegistry(reg))
	require.NoError(t, v.Evaluate("name", "first"))
	require.NoError(t, v.Evaluate("name", "second"))

	assert.Equal(t, []string{"", "first"}, seen)
	assert.Equal(t, validation.Values{"name": "second"}, v.Values())
}

func TestEvaluate_SelfConfirmComparesPreviousValue(t *testing.T) {
	v := newValidator(t, validation.MapForm{"code": ""}, []validation.Field{{Name: "code", Rules: "confirm:code"}})

	require.NoError(t, v.Evaluate("code", "abc"))
	assert.True(t, v.IsError(), "first value differs from the unrecorded one")

	require.NoError(t, v.Evaluate("code", "abc"))
	assert.False(t, v.IsError())
}

// ── cross-field sync ─────────────────────────────────────────────────────────

func TestEvaluate_CrossFieldSync(t *testing.T) {
	form, fields := passwordForm()
	v := newValidator(t, form, fields)

	require.NoError(t, v.Evaluate("password", "abcde"))
	require.NoError(t, v.Evaluate("confirm", "abcde"))
	assert.False(t, v.IsError())
	assert.Empty(t, v.Errors())

	require.NoError(t, v.Evaluate("password", "abcdef"))
	assert.Nil(t, v.FieldErrors("password"))
	assert.Equal(t, map[string]string{"confirm": "Must match password"}, v.FieldErrors("confirm"))

	require.NoError(t, v.Evaluate("confirm", "abcdef"))
	assert.False(t, v.IsError())
}

func TestEvaluate_SyncUntouchedDependentUsesLiveValue(t *testing.T) {
	form, fields := passwordForm()
	v := newValidator(t, form, fields)

	require.NoError(t, v.Evaluate("password", "abcde"))
	assert.Equal(t, map[string]string{
		"required": "This field is required",
		"confirm":  "Must match password",
	}, v.FieldErrors("confirm"))
	assert.Equal(t, validation.Values{"password": "abcde", "confirm": ""}, v.Values())

	form["confirm"] = "abcde"
	v = newValidator(t, form, fields)
	require.NoError(t, v.Evaluate("password", "abcde"))
	assert.False(t, v.IsError())
}

func TestEvaluate_SyncSettlesBeforeCallback(t *testing.T) {
	form, fields := passwordForm()
	v := newValidator(t, form, fields)

	var events []validation.ErrorEvent
	v.OnError(func(e validation.ErrorEvent) { events = append(events, e) })

	require.NoError(t, v.Evaluate("password", "abc"))

	require.Len(t, events, 2)
	assert.Equal(t, "password", events[0].Field)
	assert.Equal(t, "abc", events[0].Value)
	assert.Equal(t, map[string]string{"minLen": "Must be at least 5 characters"}, events[0].Errors)
	assert.Equal(t, "confirm", events[1].Field)
	assert.True(t, v.IsError())
}

func TestEvaluate_MutualSyncTerminates(t *testing.T) {
	v := newValidator(t, validation.MapForm{"a": "", "b": ""}, []validation.Field{
		{Name: "a", Rules: "required|confirm:b", Sync: "b"},
		{Name: "b", Rules: "required|confirm:a", Sync: "a"},
	})

	require.NoError(t, v.Evaluate("a", "x"))
	require.NoError(t, v.Evaluate("b", "x"))
	assert.False(t, v.IsError())
}

// ── callbacks ────────────────────────────────────────────────────────────────

func TestOnError_LastRegistrationWins(t *testing.T) {
	v := newValidator(t, validation.MapForm{"a": ""}, []validation.Field{{Name: "a", Rules: "required"}})

	var first, second int
	v.OnError(func(validation.ErrorEvent) { first++ })
	v.OnError(func(validation.ErrorEvent) { second++ })

	require.NoError(t, v.Evaluate("a", ""))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestOnError_NotFiredForValidField(t *testing.T) {
	v := newValidator(t, validation.MapForm{"a": ""}, []validation.Field{{Name: "a", Rules: "required"}})

	called := false
	v.OnError(func(validation.ErrorEvent) { called = true })
	require.NoError(t, v.Evaluate("a", "ok"))
	assert.False(t, called)
}

func TestOnError_ReceivesCopy(t *testing.T) {
	v := newValidator(t, validation.MapForm{"a": ""}, []validation.Field{{Name: "a", Rules: "required"}})

	v.OnError(func(e validation.ErrorEvent) { e.Errors["required"] = "mutated" })
	require.NoError(t, v.Evaluate("a", ""))

	msg, _ := v.Message("a")
	assert.Equal(t, "This field is required", msg)
}

// ── submission ───────────────────────────────────────────────────────────────

func signupFields() []validation.Field {
	return []validation.Field{
		{Name: "name", Rules: "required|minLen:4|maxLen:5"},
		{Name: "age", Rules: "required|number|min:10|max:32"},
	}
}

func TestSubmit_CancelledWhenInvalid(t *testing.T) {
	form := validation.MapForm{"name": "ab", "age": "5"}
	btn := &button{}
	v := newValidator(t, form, signupFields(), validation.WithSubmitControl(btn))

	submitted := false
	v.OnSubmit(func(validation.Values) { submitted = true })

	assert.False(t, v.Submit())
	assert.False(t, submitted)
	assert.True(t, btn.disabled)
	assert.Equal(t, map[string]map[string]string{
		"name": {"minLen": "Must be at least 4 characters"},
		"age":  {"min": "Must be at least 10"},
	}, v.Errors())
}

func TestSubmit_FiresCallbackWhenValid(t *testing.T) {
	form := validation.MapForm{"name": "abcd", "age": "15"}
	btn := &button{}
	v := newValidator(t, form, signupFields(), validation.WithSubmitControl(btn))

	var got validation.Values
	v.OnSubmit(func(values validation.Values) { got = values })

	assert.True(t, v.Submit())
	assert.Equal(t, validation.Values{"name": "abcd", "age": "15"}, got)
	assert.Empty(t, v.Errors())
	assert.False(t, btn.disabled)

	got["name"] = "mutated"
	assert.Equal(t, "abcd", v.Values()["name"], "callback receives a copy")
}

func TestSubmit_EvaluatesUntouchedFields(t *testing.T) {
	form := validation.MapForm{"name": "", "age": ""}
	v := newValidator(t, form, signupFields())

	assert.False(t, v.Submit())
	assert.Equal(t, map[string]string{
		"name": "This field is required",
		"age":  "This field is required",
	}, v.Visible())
}

func TestSubmit_RecoversAfterFix(t *testing.T) {
	form := validation.MapForm{"name": "ab", "age": "5"}
	v := newValidator(t, form, signupFields())
	require.False(t, v.Submit())

	form["name"] = "abcd"
	form["age"] = "15"
	assert.True(t, v.Submit())
}

// ── reset ────────────────────────────────────────────────────────────────────

func TestResetAllErrors(t *testing.T) {
	form := validation.MapForm{"name": "ab", "age": "5"}
	btn := &button{}
	v := newValidator(t, form, signupFields(), validation.WithSubmitControl(btn))

	require.False(t, v.Submit())
	require.True(t, btn.disabled)

	v.ResetAllErrors()
	assert.False(t, v.IsError())
	assert.Empty(t, v.Visible())
	assert.False(t, btn.disabled)
	assert.Equal(t, validation.Values{"name": "ab", "age": "5"}, v.Values(), "values survive a reset")

	v.ResetAllErrors()
	assert.False(t, btn.disabled)
}

// ── events ───────────────────────────────────────────────────────────────────

func TestDispatch_EventsMode(t *testing.T) {
	tests := []struct {
		mode  validation.EventsMode
		input bool
		blur  bool
	}{
		{validation.EventsInput, true, false},
		{validation.EventsBlur, false, true},
		{validation.EventsAll, true, true},
		{validation.EventsSubmit, false, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			v := newValidator(t, validation.MapForm{"a": ""}, []validation.Field{{Name: "a", Rules: "required"}},
				validation.WithEvents(tc.mode))

			ran, err := v.Dispatch(validation.EventInput, "a", "")
			require.NoError(t, err)
			assert.Equal(t, tc.input, ran)

			ran, err = v.Dispatch(validation.EventBlur, "a", "")
			require.NoError(t, err)
			assert.Equal(t, tc.blur, ran)

			assert.Equal(t, tc.input || tc.blur, v.IsError())
		})
	}
}

func TestDispatch_UnknownField(t *testing.T) {
	v := newValidator(t, validation.MapForm{"a": ""}, []validation.Field{{Name: "a", Rules: "required"}},
		validation.WithEvents(validation.EventsSubmit))

	_, err := v.Dispatch(validation.EventInput, "b", "")
	assert.ErrorIs(t, err, validation.ErrFieldNotFound)
}

func TestParseEventsMode(t *testing.T) {
	m, err := validation.ParseEventsMode("")
	require.NoError(t, err)
	assert.Equal(t, validation.EventsAll, m)

	m, err = validation.ParseEventsMode("blur")
	require.NoError(t, err)
	assert.Equal(t, validation.EventsBlur, m)

	_, err = validation.ParseEventsMode("change")
	assert.ErrorIs(t, err, validation.ErrInvalidEventsMode)
}
