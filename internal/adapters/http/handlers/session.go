package handlers

import (
	"strings"

	"nova-library/internal/core/domain"
	"nova-library/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionCart  = "cart"
	sessionFlash = "flash"
	sessionError = "error"
)

// visitor wraps the session of the current request
type visitor struct {
	sess *session.Session
}

func loadVisitor(store *session.Store, c *fiber.Ctx) (*visitor, error) {
	sess, err := store.Get(c)
	if err != nil {
		return nil, err
	}
	return &visitor{sess: sess}, nil
}

func (v *visitor) cart() domain.Cart {
	raw, _ := v.sess.Get(sessionCart).(string)
	return domain.ParseCart(raw)
}

func (v *visitor) setCart(cart domain.Cart) {
	if len(cart) == 0 {
		v.sess.Delete(sessionCart)
		return
	}
	v.sess.Set(sessionCart, cart.String())
}

func (v *visitor) flash(msg string) {
	v.sess.Set(sessionFlash, msg)
}

func (v *visitor) fail(msg string) {
	v.sess.Set(sessionError, msg)
}

// takeMessages pops the one-shot flash and error set by the previous POST
func (v *visitor) takeMessages() (flash, failure string) {
	flash, _ = v.sess.Get(sessionFlash).(string)
	failure, _ = v.sess.Get(sessionError).(string)
	if flash != "" {
		v.sess.Delete(sessionFlash)
	}
	if failure != "" {
		v.sess.Delete(sessionError)
	}
	return flash, failure
}

func (v *visitor) save() {
	if err := v.sess.Save(); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("save session failed")
	}
}

// backTo returns a same-site path to redirect to after a form post
func backTo(c *fiber.Ctx, fallback string) string {
	back := c.FormValue("back")
	if strings.HasPrefix(back, "/") && !strings.HasPrefix(back, "//") {
		return back
	}
	return fallback
}
