package schedule

import (
	"reflect"
	"testing"
)

func TestQueue_RunDue_OrdersByTimeThenInsertion(t *testing.T) {
	q := New()
	var order []string

	q.At(0.2, func(float64) { order = append(order, "c") })
	q.At(0.1, func(float64) { order = append(order, "a") })
	q.At(0.1, func(float64) { order = append(order, "b") })
	q.At(0.5, func(float64) { order = append(order, "late") })

	if ran := q.RunDue(0.3); ran != 3 {
		t.Errorf("expected 3 actions, got %d", ran)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order, want) {
		t.Errorf("expected order %v, got %v", want, order)
	}
	if q.Len() != 1 {
		t.Errorf("expected 1 pending action, got %d", q.Len())
	}
}

func TestQueue_RunDue_PassesCurrentTime(t *testing.T) {
	q := New()
	var got float64
	q.At(1, func(now float64) { got = now })

	q.RunDue(0.99)
	if got != 0 {
		t.Fatal("action ran before it was due")
	}
	q.RunDue(1.25)
	if got != 1.25 {
		t.Errorf("expected now 1.25, got %v", got)
	}
}

func TestQueue_ChainedActions(t *testing.T) {
	q := New()
	count := 0
	var step Action
	step = func(now float64) {
		count++
		if count < 5 {
			q.At(now, step)
		}
	}
	q.At(0, step)

	q.RunDue(0)

	if count != 5 {
		t.Errorf("expected chained actions to run in the same call, got %d", count)
	}
}

func TestQueue_Clear(t *testing.T) {
	q := New()
	ran := false
	q.At(0, func(float64) { ran = true })
	q.At(1, nil)

	if q.Len() != 1 {
		t.Fatalf("nil action should not be queued, len %d", q.Len())
	}
	q.Clear()
	q.RunDue(10)

	if ran {
		t.Error("cleared action should not run")
	}
}
