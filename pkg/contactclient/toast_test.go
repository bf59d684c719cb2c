package contactclient_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creativemarketingpro/backend/pkg/contactclient"
)

func TestToaster_ReplacesCurrent(t *testing.T) {
	toaster := contactclient.NewToaster(0)

	toaster.Notify(contactclient.Notification{Kind: contactclient.KindError, Title: "first"})
	toaster.Notify(contactclient.Notification{Kind: contactclient.KindSuccess, Title: "second"})

	n, ok := toaster.Current()
	assert.True(t, ok)
	assert.Equal(t, "second", n.Title)
	assert.Equal(t, 2, toaster.Shown())

	toaster.Dismiss()
	_, ok = toaster.Current()
	assert.False(t, ok)
}

func TestToaster_Expires(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	toaster := contactclient.NewToaster(5*time.Second, contactclient.WithToasterClock(func() time.Time { return now }))

	toaster.Notify(contactclient.Notification{Title: "hello"})
	n, ok := toaster.Current()
	assert.True(t, ok)
	assert.Equal(t, now, n.ShownAt)

	now = now.Add(4 * time.Second)
	_, ok = toaster.Current()
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = toaster.Current()
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "success", contactclient.KindSuccess.String())
	assert.Equal(t, "error", contactclient.KindError.String())
}
