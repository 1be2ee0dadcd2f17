// Package totp implements time-based one-time passwords per RFC 4226 (HOTP)
// and RFC 6238 (TOTP): secret key generation, provisioning URI construction
// compatible with authenticator applications, and time-windowed code
// validation.
//
// Keeping the algorithm self-contained avoids a dependency on third-party
// OTP libraries while staying on the interoperable defaults: 160-bit Base32
// secrets, HMAC-SHA1, 6 digits, 30-second steps.
//
// Enrollment and verification:
//
//	secret, _ := totp.GenerateSecret()
//
//	uri, _ := totp.ProvisioningURI(totp.Params{
//	    Secret:      secret,
//	    AccountName: "alice",
//	    Issuer:      "Acme",
//	})
//	// render uri as a QR code for the user to scan
//
//	ok, _ := totp.ValidateCode(secret, submitted, time.Now(), totp.DefaultWindow)
//
// ValidateCode checks the submitted code against every step within the given
// window using constant-time comparison. It deliberately implements no replay
// tracking; callers that need single-use semantics must record the last
// accepted step themselves.
package totp
