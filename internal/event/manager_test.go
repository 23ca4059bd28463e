package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var got []string

	m.Subscribe(TypeRefactorFailed, func(e Event) bool {
		got = append(got, "first:"+e.Data.(RefactorData).Command)
		return false
	})
	m.Subscribe(TypeRefactorFailed, func(e Event) bool {
		got = append(got, "second")
		return true
	})
	m.Subscribe(TypeRefactorFailed, func(e Event) bool {
		got = append(got, "third")
		return false
	})

	m.Dispatch(TypeRefactorFailed, RefactorData{Command: "wrap"})
	m.Dispatch(TypeBufferSaved, BufferSavedData{})

	assert.Equal(t, []string{"first:wrap", "second"}, got)
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	calls := 0

	m.Subscribe(TypeBufferModified, func(Event) bool {
		calls++
		m.Subscribe(TypeBufferModified, func(Event) bool {
			calls += 10
			return false
		})
		return false
	})

	m.Dispatch(TypeBufferModified, BufferModifiedData{})
	assert.Equal(t, 1, calls)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "RefactorApplied", TypeRefactorApplied.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
