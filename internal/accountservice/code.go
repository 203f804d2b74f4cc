package accountservice

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// CodeGenerator derives signup verification codes. A code is an HMAC over the
// account's current mutable state and a coarse time bucket: it is never
// stored, it expires when the bucket window passes, and any account change
// (version bump) invalidates it.
type CodeGenerator struct {
	secret []byte
	period time.Duration
	skew   int

	// now is swappable for tests.
	now func() time.Time
}

const codeLength = 32

func NewCodeGenerator(secret string, period time.Duration, skew int) *CodeGenerator {
	return &CodeGenerator{
		secret: []byte(secret),
		period: period,
		skew:   skew,
		now:    time.Now,
	}
}

func (g *CodeGenerator) bucket(offset int) int64 {
	return g.now().Unix()/int64(g.period.Seconds()) - int64(offset)
}

func (g *CodeGenerator) derive(a *Account, bucket int64) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%d:%s:%s:%s:%d:%d", a.ID, a.Username, a.Email, a.Role, a.Version, bucket)
	return hex.EncodeToString(mac.Sum(nil))[:codeLength]
}

// Generate returns the verification code for the account's current state.
func (g *CodeGenerator) Generate(a *Account) string {
	return g.derive(a, g.bucket(0))
}

// Verify accepts the code for the current bucket and up to skew previous
// buckets, compared in constant time.
func (g *CodeGenerator) Verify(a *Account, code string) bool {
	for offset := 0; offset <= g.skew; offset++ {
		want := g.derive(a, g.bucket(offset))
		if subtle.ConstantTimeCompare([]byte(want), []byte(code)) == 1 {
			return true
		}
	}
	return false
}
