package medinfo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"pillpal/internal/domain/medications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGen struct {
	configured bool
	text       string
	err        error

	calls   atomic.Int32
	prompts chan string
}

func (f *fakeGen) IsConfigured() bool { return f.configured }

func (f *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if f.prompts != nil {
		f.prompts <- prompt
	}
	return f.text, f.err
}

var ibuprofen = medications.Medication{ID: "m1", Name: "Ibuprofen", Dosage: "200mg"}

func TestLookup_NotConfigured(t *testing.T) {
	gen := &fakeGen{}
	res := NewService(gen, nil).Lookup(context.Background(), ibuprofen)

	assert.Equal(t, MsgNotConfigured, res.Error)
	assert.Empty(t, res.Content)
	assert.Zero(t, gen.calls.Load())

	res = NewService(nil, nil).Lookup(context.Background(), ibuprofen)
	assert.Equal(t, MsgNotConfigured, res.Error)
}

func TestLookup_Success(t *testing.T) {
	gen := &fakeGen{configured: true, text: "  This medication is commonly used for pain.  ", prompts: make(chan string, 1)}
	res := NewService(gen, nil).Lookup(context.Background(), ibuprofen)

	require.True(t, res.OK())
	assert.Equal(t, "This medication is commonly used for pain.", res.Content)
	assert.Equal(t, "m1", res.MedicationID)
	assert.Equal(t, "Ibuprofen", res.MedicationName)
	assert.Equal(t, Prompt("Ibuprofen"), <-gen.prompts)
}

func TestLookup_FailureBecomesMessage(t *testing.T) {
	for name, gen := range map[string]*fakeGen{
		"upstream": {configured: true, err: errors.New("connection refused")},
		"empty":    {configured: true, text: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			res := NewService(gen, nil).Lookup(context.Background(), ibuprofen)
			assert.Equal(t, MsgFailed, res.Error)
			assert.Empty(t, res.Content)
			assert.EqualValues(t, 1, gen.calls.Load())
		})
	}
}

func TestLookupAsync_CarriesCapturedMedication(t *testing.T) {
	gen := &fakeGen{configured: true, text: "This medication is commonly used for fever."}
	svc := NewService(gen, nil)

	med := ibuprofen.Clone()
	ch := svc.LookupAsync(context.Background(), med)
	med.Name = "renamed"

	select {
	case res := <-ch:
		assert.Equal(t, "Ibuprofen", res.MedicationName)
		assert.Equal(t, "m1", res.MedicationID)
	case <-time.After(2 * time.Second):
		t.Fatal("lookup did not complete")
	}

	_, open := <-ch
	assert.False(t, open)
}

func TestPrompt(t *testing.T) {
	assert.Equal(t,
		`Provide a brief, simple, one-paragraph explanation for the common use of the medication "Aspirin". `+
			`Do not provide medical advice, dosage information, or side effects. `+
			`Start the explanation with "This medication is commonly used for...". `+
			`Keep the language easy to understand for a non-medical person.`,
		Prompt("Aspirin"))
}
