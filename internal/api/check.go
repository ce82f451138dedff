// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/gin-gonic/gin"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/rs/zerolog/log"

	"passtrength/internal/breach"
	"passtrength/internal/policy"
	"passtrength/internal/strength"
)

type checkApi struct {
	catalog  *policy.Catalog
	breaches *breach.Index
	cache    *ristretto.Cache
}

func (a *checkApi) checkPassword(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := cacheKey(req.Policy, req.Password)
	if cached, ok := a.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	// The selection is resolved per request; the shared catalog is never
	// mutated by handlers.
	name, pol := a.resolvePolicy(req.Policy)
	ent := strength.Estimate(req.Password)
	checks := policy.Evaluate(req.Password, ent, pol)

	estimate := zxcvbn.PasswordStrength(req.Password, nil)
	resp := checkResponse{
		Length:   ent.Length,
		Pool:     ent.Pool,
		Entropy:  ent.Entropy,
		Rating:   ent.Rating.String(),
		Breached: a.breaches.Contains(req.Password),
		Policy:   name,
		Passed:   checks.Passed(),
		Failed:   checks.Failed(),
		Checks:   checks,
		Strength: &passwordStrength{
			CrackTime:        estimate.CrackTime,
			CrackTimeDisplay: estimate.CrackTimeDisplay,
			Score:            estimate.Score,
		},
	}

	a.cache.SetWithTTL(key, resp, 1, time.Hour)
	c.JSON(http.StatusOK, resp)
}

// resolvePolicy maps the request selector to a catalog policy; unknown
// or empty selectors fall back to the catalog default, never an error.
func (a *checkApi) resolvePolicy(selector string) (string, policy.Policy) {
	if p, ok := a.catalog.Get(selector); ok {
		return selector, p
	}
	name, p := a.catalog.Current()
	return name, p
}

// cacheKey hashes the selector and password so cleartext passwords are
// never held as cache keys.
func cacheKey(selector, password string) string {
	h := sha1.New()
	h.Write([]byte(selector))
	h.Write([]byte{0})
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

func RegisterCheckApi(group *gin.RouterGroup, frameworksFile string, breachFile string) error {
	catalog := policy.LoadFile(frameworksFile)
	if warning := catalog.Warning(); warning != "" {
		log.Warn().Msg(warning)
	}

	var breaches *breach.Index
	if breachFile != "" {
		breaches = breach.LoadFile(breachFile)
	} else {
		breaches = breach.Default()
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	a := &checkApi{catalog: catalog, breaches: breaches, cache: cache}

	group.POST("/password", a.checkPassword)

	return nil
}
