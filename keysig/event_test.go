package keysig

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestEventZeroValueIsCMajor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	var ev Event
	assert.NoError(t, ev.Validate())
	assert.True(t, ev.Equal(NewEvent(0, 0)))
	assert.Equal(t, "0", ev.String())
}

func TestEventValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	for _, ev := range []Event{NewEvent(7, -7), NewEvent(-7, 7), CustomEvent(3), CustomEvent(UnregisteredCustom)} {
		assert.NoError(t, ev.Validate(), "%v should be valid", ev)
	}
	for _, ev := range []Event{NewEvent(8, 0), NewEvent(0, -8), NewEvent(math.MinInt, 0), NewEvent(0, math.MinInt)} {
		err := ev.Validate()
		assert.True(t, errors.Is(err, ErrInvalidCount), "expected ErrInvalidCount for %v, have %v", ev, err)
	}
	assert.Error(t, InvalidEvent().Validate())
	assert.Error(t, CustomEvent(-2).Validate())
}

func TestEventEqual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	assert.True(t, NewEvent(3, -2).Equal(NewEvent(3, -2)))
	assert.False(t, NewEvent(3, -2).Equal(NewEvent(3, 0)), "naturals are part of the key change")
	assert.False(t, NewEvent(0, 0).Equal(CustomEvent(0)))
	assert.True(t, CustomEvent(4).Equal(CustomEvent(4)))
	assert.False(t, CustomEvent(4).Equal(CustomEvent(5)))
	unreg := CustomEvent(UnregisteredCustom)
	assert.False(t, unreg.Equal(unreg), "unregistered custom events are never equal")
	inv := InvalidEvent()
	assert.False(t, inv.Equal(inv), "invalid events are never equal")
}

func TestEventWithers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	ev := InvalidEvent().WithAccidentals(-3)
	assert.False(t, ev.Invalid())
	assert.Equal(t, -3, ev.Accidentals())
	ev = ev.WithNaturals(2)
	assert.Equal(t, "3♭ (cancel 2♯)", ev.String())
	c := ev.WithCustom(2)
	assert.True(t, c.Custom())
	assert.Equal(t, 0, c.Accidentals())
	assert.False(t, c.WithAccidentals(1).Custom())
	assert.Equal(t, NewEvent(7, -7), NewEvent(12, -9).Clamped())
}

func TestEventSubtype(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	events := []Event{
		NewEvent(0, 0),
		NewEvent(7, -7),
		NewEvent(-7, 7),
		NewEvent(-1, 3),
		CustomEvent(0),
		CustomEvent(0xbeef),
		InvalidEvent(),
	}
	for _, ev := range events {
		assert.Equal(t, ev, FromSubtype(ev.Subtype()), "subtype round trip for %v", ev)
	}
	assert.Equal(t, NewEvent(-2, 3), FromSubtype(0x3e))
	assert.Equal(t, CustomEvent(5), FromSubtype(1<<24|5<<8))
}
