// Package cookie carries the session ID to the browser as an HS256-signed
// token, so a forged or altered cookie never reaches the session store.
package cookie

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Name is the session cookie name.
const Name = "sid"

var ErrNoSession = errors.New("no valid session cookie")

// Options control the cookie attributes.
type Options struct {
	Secret string
	TTL    time.Duration
	// Secure marks the cookie Secure and SameSite=None, for cross-site use
	// behind HTTPS. When false the cookie is SameSite=Lax.
	Secure bool
}

type Codec struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewCodec(opts Options) *Codec {
	return &Codec{
		secret: []byte(opts.Secret),
		ttl:    opts.TTL,
		secure: opts.Secure,
		now:    time.Now,
	}
}

// Issue writes the session cookie for sessionID, valid for the configured TTL.
func (c *Codec) Issue(ctx echo.Context, sessionID string) error {
	now := c.now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return err
	}

	ctx.SetCookie(c.cookie(signed, now))
	return nil
}

// Read returns the session ID carried by the request cookie, or ErrNoSession
// when the cookie is absent, expired, or not signed with our secret.
func (c *Codec) Read(ctx echo.Context) (string, error) {
	ck, err := ctx.Cookie(Name)
	if err != nil || ck.Value == "" {
		return "", ErrNoSession
	}

	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(ck.Value, &claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid || claims.ID == "" {
		return "", ErrNoSession
	}
	return claims.ID, nil
}

func (c *Codec) cookie(value string, now time.Time) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if c.secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		Expires:  now.Add(c.ttl),
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: sameSite,
	}
}
