package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// CookieName is the visitor session cookie
const CookieName = "nova_session"

// Options holds visitor session settings
type Options struct {
	Expiration   time.Duration
	CookieSecure bool
}

// NewStore builds the visitor session store. A nil storage keeps sessions in memory.
func NewStore(storage fiber.Storage, opts Options) *fibersession.Store {
	if opts.Expiration <= 0 {
		opts.Expiration = 24 * time.Hour
	}
	return fibersession.New(fibersession.Config{
		Storage:        storage,
		Expiration:     opts.Expiration,
		KeyLookup:      "cookie:" + CookieName,
		CookieSecure:   opts.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
}
