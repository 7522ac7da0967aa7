package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/dsl"
	"github.com/reoring/goform/form"
	"github.com/reoring/goform/rules"
)

func testSchema(t *testing.T) *dsl.Schema {
	t.Helper()
	s, err := dsl.Object().
		Field("name", dsl.String().Required("Name is required.")).
		Field("birthday", dsl.Date().Required("Birthday is required.")).
		Field("password", dsl.String().Min(8, "Password too short.")).
		Field("confirm", dsl.String().Required("Confirm is required.")).
		Field("digit", dsl.Number().Coerce("Not a number.").Min(0, "neg").Max(9, "big")).
		RefineWith(rules.Equal("confirm", "password", "Passwords don't match")).
		Build()
	require.NoError(t, err)
	return s
}

func initial() goform.Record {
	return goform.Record{
		"name":     "",
		"birthday": time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		"password": "",
		"confirm":  "",
		"digit":    0,
	}
}

func valid() goform.Record {
	return goform.Record{
		"name":     "Ann",
		"password": "password123",
		"confirm":  "password123",
		"digit":    "5",
	}
}

type focusRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *focusRecorder) handle(name string) form.Focuser {
	return form.FocusFunc(func() {
		r.mu.Lock()
		r.calls = append(r.calls, name)
		r.mu.Unlock()
	})
}

func (r *focusRecorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestDirtyTracking(t *testing.T) {
	c := form.New(testSchema(t), initial())
	require.False(t, c.Dirty())

	require.NoError(t, c.SetField("name", "Ann"))
	require.True(t, c.Dirty())

	require.NoError(t, c.SetField("name", ""))
	require.False(t, c.Dirty(), "reverting to the initial value clears dirty")

	require.ErrorIs(t, c.SetField("nope", 1), goform.ErrUnknownField)
}

func TestSetValues_MarksDirty(t *testing.T) {
	c := form.New(testSchema(t), initial())
	require.NoError(t, c.SetValues(goform.Record{"digit": 5}))
	require.True(t, c.Dirty())
	require.Equal(t, 5, c.Value("digit"))

	// numerically equal to the initial value
	c2 := form.New(testSchema(t), initial())
	require.NoError(t, c2.SetValues(goform.Record{"digit": 0.0}))
	require.False(t, c2.Dirty())

	err := c.SetValues(goform.Record{"digit": 7, "bogus": 1})
	require.ErrorIs(t, err, goform.ErrUnknownField)
	require.Equal(t, 5, c.Value("digit"), "nothing applied on error")
}

func TestSubmit_NotDirtyIsNoop(t *testing.T) {
	c := form.New(testSchema(t), initial())
	called := false
	out, err := c.Submit(context.Background(), func(context.Context, goform.Record) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, form.ErrNotDirty)
	require.Equal(t, form.OutcomeSkipped, out)
	require.False(t, called)
	require.Zero(t, c.SubmitCount())
	require.Empty(t, c.Errors())
}

func TestSubmit_InvalidRoutesFocusToFirstError(t *testing.T) {
	rec := &focusRecorder{}
	c := form.New(testSchema(t), initial())
	unmountName, err := c.Mount("name", rec.handle("name"))
	require.NoError(t, err)
	defer unmountName()
	c.Registry().Register("password", rec.handle("password"))

	require.NoError(t, c.SetField("password", "short"))
	out, err := c.Submit(context.Background(), func(context.Context, goform.Record) error {
		t.Fatal("handler must not run on invalid input")
		return nil
	})
	require.Equal(t, form.OutcomeInvalid, out)
	iss, ok := goform.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, []string{"name", "password", "confirm"}, iss.Fields())
	require.Equal(t, []string{"name"}, rec.got())

	require.False(t, c.Submitting())
	require.Equal(t, form.StateIdle, c.State())
	require.Equal(t, form.OutcomeInvalid, c.LastOutcome())
	require.Equal(t, "Name is required.", c.Error("name"))
	require.Equal(t, "", c.Error("digit"))
}

func TestSubmit_UnregisteredFirstFieldIsSilent(t *testing.T) {
	rec := &focusRecorder{}
	c := form.New(testSchema(t), initial())
	c.Registry().Register("password", rec.handle("password"))

	v := valid()
	v["digit"] = "x" // digit is a picker: no handle
	require.NoError(t, c.SetValues(v))
	out, _ := c.Submit(context.Background(), nil)
	require.Equal(t, form.OutcomeInvalid, out)
	require.Equal(t, []string{"digit"}, c.Errors().Fields())
	require.Empty(t, rec.got())
}

func TestSubmit_InvalidHandlerOverridesFocus(t *testing.T) {
	rec := &focusRecorder{}
	var seen goform.Issues
	c := form.New(testSchema(t), initial(), form.WithInvalidHandler(func(iss goform.Issues) { seen = iss }))
	c.Registry().Register("name", rec.handle("name"))
	require.NoError(t, c.SetField("digit", 3))

	_, err := c.Submit(context.Background(), nil)
	require.Error(t, err)
	require.NotEmpty(t, seen)
	require.Empty(t, rec.got())
}

func TestSubmit_SuccessPassesCoercedValues(t *testing.T) {
	c := form.New(testSchema(t), initial())
	require.NoError(t, c.SetValues(valid()))

	var got goform.Record
	out, err := c.Submit(context.Background(), func(_ context.Context, v goform.Record) error {
		got = v
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, form.OutcomeSucceeded, out)
	require.Equal(t, float64(5), got["digit"])
	require.False(t, c.Submitting())
	require.Equal(t, form.OutcomeSucceeded, c.LastOutcome())
	require.Equal(t, 1, c.SubmitCount())
	require.Empty(t, c.Errors())
}

func TestSubmit_HandlerErrorResetsSubmitting(t *testing.T) {
	c := form.New(testSchema(t), initial())
	require.NoError(t, c.SetValues(valid()))
	boom := errors.New("network down")

	out, err := c.Submit(context.Background(), func(context.Context, goform.Record) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, form.OutcomeFailed, out)
	require.False(t, c.Submitting())
	require.Equal(t, form.StateIdle, c.State())

	// resubmission is a fresh explicit action and is allowed
	out, err = c.Submit(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, form.OutcomeSucceeded, out)
}

func TestSubmit_HandlerPanicResetsSubmitting(t *testing.T) {
	obs := &recordingObserver{}
	c := form.New(testSchema(t), initial(), form.WithObserver(obs))
	require.NoError(t, c.SetValues(valid()))

	require.Panics(t, func() {
		_, _ = c.Submit(context.Background(), func(context.Context, goform.Record) error { panic("boom") })
	})
	require.False(t, c.Submitting())
	require.Equal(t, form.OutcomeFailed, c.LastOutcome())
	require.Equal(t, []form.Outcome{form.OutcomeFailed}, obs.outcomes)
	require.Equal(t, []form.State{
		form.StateValidating, form.StateSubmitting, form.StateFailed, form.StateIdle,
	}, obs.transitions)
}

// stateReadingObserver reads the controller from inside its callbacks.
type stateReadingObserver struct {
	form.NopObserver
	c    *form.Controller
	seen []form.State
}

func (o *stateReadingObserver) StateChanged(_ string, _, _ form.State) {
	o.seen = append(o.seen, o.c.State())
}

func TestObserver_MayReadControllerState(t *testing.T) {
	obs := &stateReadingObserver{}
	c := form.New(testSchema(t), initial(), form.WithObserver(obs))
	obs.c = c
	require.NoError(t, c.SetValues(valid()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(context.Background(), nil)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("observer callback deadlocked the controller")
	}
	require.Len(t, obs.seen, 4)
	require.Equal(t, form.StateIdle, obs.seen[3])
}

func TestSubmit_WhileSubmittingIsNoop(t *testing.T) {
	c := form.New(testSchema(t), initial())
	require.NoError(t, c.SetValues(valid()))

	entered := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	handler := func(context.Context, goform.Record) error {
		calls++
		close(entered)
		<-release
		return nil
	}

	done := make(chan form.Outcome)
	go func() {
		out, _ := c.Submit(context.Background(), handler)
		done <- out
	}()
	<-entered

	before := c.Values()
	require.True(t, c.Submitting())
	require.Equal(t, form.StateSubmitting, c.State())
	b, err := c.Field("name")
	require.NoError(t, err)
	require.True(t, b.Disabled)

	out, err := c.Submit(context.Background(), handler)
	require.ErrorIs(t, err, form.ErrSubmitting)
	require.Equal(t, form.OutcomeSkipped, out)
	require.Equal(t, before, c.Values())
	require.True(t, c.Dirty())
	require.True(t, c.Submitting())
	require.ErrorIs(t, c.Reset(), form.ErrSubmitting)

	close(release)
	require.Equal(t, form.OutcomeSucceeded, <-done)
	require.Equal(t, 1, calls)
	require.False(t, c.Submitting())
}

func TestSubmit_DirtyGateAfterFailedValidation(t *testing.T) {
	c := form.New(testSchema(t), initial())
	require.NoError(t, c.SetField("name", "Ann"))
	out, _ := c.Submit(context.Background(), nil)
	require.Equal(t, form.OutcomeInvalid, out)

	// reverting to the initial values blocks resubmission even though errors remain
	require.NoError(t, c.SetField("name", ""))
	out, err := c.Submit(context.Background(), nil)
	require.Equal(t, form.OutcomeSkipped, out)
	require.ErrorIs(t, err, form.ErrNotDirty)
	require.NotEmpty(t, c.Errors())
}

func TestValidateOnChange(t *testing.T) {
	c := form.New(testSchema(t), initial(), form.WithValidateOn(goform.ValidateOnChange))
	require.NoError(t, c.SetField("password", "short"))
	require.Equal(t, "Password too short.", c.Error("password"))

	require.NoError(t, c.SetField("name", ""))
	require.Equal(t, []string{"name", "password"}, c.Errors().Fields(), "declaration order is kept")

	require.NoError(t, c.SetField("password", "long enough"))
	require.Equal(t, "", c.Error("password"))
}

func TestValidateOnSubmitHasNoChangeSideEffect(t *testing.T) {
	c := form.New(testSchema(t), initial())
	require.NoError(t, c.SetField("password", "short"))
	require.Empty(t, c.Errors())
	c.Blur("password")
	require.Empty(t, c.Errors())
}

func TestValidateOnBlur(t *testing.T) {
	c := form.New(testSchema(t), initial(), form.WithValidateOn(goform.ValidateOnBlur))
	b, err := c.Field("password")
	require.NoError(t, err)
	require.NoError(t, b.OnChange("short"))
	require.Empty(t, c.Errors())

	b.OnBlur()
	b, _ = c.Field("password")
	require.Equal(t, "Password too short.", b.Error)
	require.Equal(t, "short", b.Value)

	_, err = c.Field("nope")
	require.ErrorIs(t, err, goform.ErrUnknownField)
}

func TestReset(t *testing.T) {
	c := form.New(testSchema(t), initial())
	require.NoError(t, c.SetField("name", "x"))
	_, _ = c.Submit(context.Background(), nil)
	require.NotEmpty(t, c.Errors())

	require.NoError(t, c.Reset())
	require.False(t, c.Dirty())
	require.Empty(t, c.Errors())
	require.Equal(t, initial(), c.Values())
}

func TestFootnoteAndPickFields(t *testing.T) {
	s := testSchema(t)
	c := form.New(s, initial())
	fields, err := form.PickFields(s, "password", "confirm")
	require.NoError(t, err)
	sec := form.Section{Title: "Password", Fields: fields, Footnote: "At least 8 characters."}

	msg, isErr := c.Footnote(sec)
	require.False(t, isErr)
	require.Equal(t, "At least 8 characters.", msg)

	require.NoError(t, c.SetValues(goform.Record{"name": "Ann", "password": "password123", "confirm": "nope"}))
	_, _ = c.Submit(context.Background(), nil)
	msg, isErr = c.Footnote(sec)
	require.True(t, isErr)
	require.Equal(t, "Passwords don't match", msg)

	_, err = form.PickFields(s, "password", "bogus")
	require.ErrorIs(t, err, goform.ErrUnknownField)
}

func TestRegistry_ReplaceAndUnregister(t *testing.T) {
	r := form.NewRegistry()
	rec := &focusRecorder{}

	unOld := r.Register("email", rec.handle("old"))
	unNew := r.Register("email", rec.handle("new"))
	unOld() // stale unmount must not remove the newer handle

	h, ok := r.Lookup("email")
	require.True(t, ok)
	h.Focus()
	require.Equal(t, []string{"new"}, rec.got())

	unNew()
	unNew()
	_, ok = r.Lookup("email")
	require.False(t, ok)
	require.Zero(t, r.Len())
}

func TestMountUnknownField(t *testing.T) {
	c := form.New(testSchema(t), initial())
	_, err := c.Mount("bogus", form.FocusFunc(func() {}))
	require.ErrorIs(t, err, goform.ErrUnknownField)
}

type recordingObserver struct {
	form.NopObserver
	mu          sync.Mutex
	transitions []form.State
	outcomes    []form.Outcome
	rejected    []error
}

func (o *recordingObserver) StateChanged(_ string, _, to form.State) {
	o.mu.Lock()
	o.transitions = append(o.transitions, to)
	o.mu.Unlock()
}

func (o *recordingObserver) SubmitDone(_ string, out form.Outcome, _ time.Duration) {
	o.mu.Lock()
	o.outcomes = append(o.outcomes, out)
	o.mu.Unlock()
}

func (o *recordingObserver) SubmitRejected(err error) {
	o.mu.Lock()
	o.rejected = append(o.rejected, err)
	o.mu.Unlock()
}

func TestObserver_StateMachine(t *testing.T) {
	obs := &recordingObserver{}
	ids := 0
	c := form.New(testSchema(t), initial(),
		form.WithObserver(obs),
		form.WithIDGenerator(func() string { ids++; return "id" }),
	)

	_, _ = c.Submit(context.Background(), nil) // not dirty
	require.NoError(t, c.SetField("name", "x"))
	_, _ = c.Submit(context.Background(), nil) // invalid
	require.NoError(t, c.SetValues(valid()))
	_, _ = c.Submit(context.Background(), nil) // ok

	require.Equal(t, []form.State{
		form.StateValidating, form.StateFailed, form.StateIdle,
		form.StateValidating, form.StateSubmitting, form.StateSucceeded, form.StateIdle,
	}, obs.transitions)
	require.Equal(t, []form.Outcome{form.OutcomeInvalid, form.OutcomeSucceeded}, obs.outcomes)
	require.Len(t, obs.rejected, 1)
	require.Equal(t, 2, ids)
}

func TestStringers(t *testing.T) {
	require.Equal(t, "submitting", form.StateSubmitting.String())
	require.Equal(t, "invalid", form.OutcomeInvalid.String())
}
