package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_FullSentence(t *testing.T) {
	now := refNow()
	x := NewExtractor()

	got := x.Extract("Họp nhóm lúc 10h sáng mai ở phòng 302, nhắc trước 15 phút", now)

	require.Equal(t, ResolveOK, got.Outcome)
	assert.Equal(t, "họp nhóm", got.Name)
	assert.True(t, time.Date(2025, 11, 6, 10, 0, 0, 0, ict).Equal(got.Start))
	require.NotNil(t, got.Location)
	assert.Equal(t, "phòng 302", *got.Location)
	assert.Equal(t, 15, got.ReminderMinutes)
	assert.Equal(t, CategoryMeeting, got.Category)
}

func TestExtractor_ReminderForms(t *testing.T) {
	now := refNow()
	x := NewExtractor()

	tests := []struct {
		text string
		want int
	}{
		{"họp 9h mai nhắc trước 15 phút", 15},
		{"họp 9h mai nhắc tôi trước 1 tiếng", 60},
		{"họp 9h mai báo trước 30 phút", 30},
		{"họp 9h mai trước 2 giờ nhắc", 120},
		// short unit spellings
		{"họp 9h mai nhắc trước 10p", 10},
		{"họp 9h mai nhắc tôi 15p trước", 15},
		{"họp 9h mai nhắc trước 1h", 60},
	}
	for _, tt := range tests {
		got := x.Extract(tt.text, now)
		assert.Equal(t, tt.want, got.ReminderMinutes, "input %q", tt.text)
	}

	// no reminder phrase means no advance warning
	got := x.Extract("họp 9h mai", now)
	assert.Equal(t, 0, got.ReminderMinutes)

	// a bare reminder verb carries no offset but stays out of the name
	got = x.Extract("nhắc tôi đi họp 9h mai", now)
	require.Equal(t, ResolveOK, got.Outcome)
	assert.Equal(t, 0, got.ReminderMinutes)
	assert.Equal(t, "đi họp", got.Name)
}

func TestExtractor_PronounToiIsNotEvening(t *testing.T) {
	now := refNow()
	x := NewExtractor()

	got := x.Extract("Gọi cho tôi lúc 9h tối", now)

	require.Equal(t, ResolveOK, got.Outcome)
	assert.Equal(t, "gọi cho tôi", got.Name)
	assert.True(t, time.Date(2025, 11, 5, 21, 0, 0, 0, ict).Equal(got.Start))
}

func TestExtractor_LocationKeepsDiacritics(t *testing.T) {
	now := refNow()
	x := NewExtractor()

	got := x.Extract("Ăn tối với gia đình lúc 7h tối mai tại quán Ngon", now)

	require.Equal(t, ResolveOK, got.Outcome)
	require.NotNil(t, got.Location)
	assert.Equal(t, "quán ngon", *got.Location)
	assert.True(t, time.Date(2025, 11, 6, 19, 0, 0, 0, ict).Equal(got.Start))
}

func TestExtractor_NoTimeExpression(t *testing.T) {
	now := refNow()
	x := NewExtractor()

	got := x.Extract("mua quà cho mẹ", now)
	assert.Equal(t, ResolveNotFound, got.Outcome)
}

func TestExtractor_EmptyNameLeftToCaller(t *testing.T) {
	now := refNow()
	x := NewExtractor()

	// nothing left after the time words come out; the service layer
	// substitutes the display name
	got := x.Extract("10h sáng mai", now)
	require.Equal(t, ResolveOK, got.Outcome)
	assert.Equal(t, "", got.Name)
}

func TestExtractor_BareMotIsTimeWord(t *testing.T) {
	now := refNow()
	x := NewExtractor()

	got := x.Extract("họp mốt 9h", now)
	require.Equal(t, ResolveOK, got.Outcome)
	assert.Equal(t, "họp", got.Name)
	assert.True(t, time.Date(2025, 11, 7, 9, 0, 0, 0, ict).Equal(got.Start))
}

func TestFolded_OffsetMapping(t *testing.T) {
	f := NewFolded("Họp ở phòng 302")

	assert.Equal(t, "hop o phong 302", f.Text)
	assert.Equal(t, "hop", Fold("Họp"))
	assert.Equal(t, "phòng 302", f.OrigSpan(6, 15))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"họp nhóm", CategoryMeeting},
		{"ăn trưa", CategoryMeal},
		{"học tiếng anh", CategoryStudy},
		{"khám răng", CategoryHealth},
		{"sinh nhật bé Na", CategoryBirthday},
		{"đón xe về quê", CategoryTravel},
		{"tưới cây", CategoryUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.name, Fold(tt.name)), "input %q", tt.name)
	}
}
