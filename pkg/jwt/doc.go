// Package jwt issues and verifies stateless HS256 bearer tokens.
//
// A Service signs compact RFC 7519 tokens carrying a subject and expiry, and
// Middleware guards HTTP routes by validating the Authorization header and
// injecting the verified claims into the request context:
//
//	svc, _ := jwt.New([]byte(cfg.SigningKey))
//	token, _ := svc.Issue("alice", 10*time.Minute)
//
//	r.Route("/api", func(r chi.Router) {
//	    r.Use(jwt.Middleware(svc))
//	    ...
//	})
//
// Only HS256 is implemented; Parse rejects tokens declaring any other
// algorithm and compares signatures in constant time. Tokens are not
// persisted or revocable — expiry is the only lifecycle.
package jwt
