// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package auth derives session status from identity tokens.

Key Components:

  - StatusChecker: Anonymous/signed-in flag and moderator claim checks
  - DecodeClaims: Payload decoding of a compact JWT without verification
  - TokenVerifier: Optional HS256 signature verification
  - Middleware: Bearer token extraction into the request context

Tokens are issued elsewhere. This package never signs tokens; it reads the
claims the issuer put there. The moderator claim follows JavaScript
truthiness, so 1, "yes" and true all mark a moderator while 0, "" and null do
not.

Usage Example:

	gw := session.NewGateway(opener)
	checker := auth.NewStatusChecker(gw)

	anonymous, err := checker.IsAnonymous(ctx)
	if err != nil {
	    return err
	}
	if !anonymous {
	    isMod, err := checker.CheckIsModerator(ctx)
	    // ...
	}
*/
package auth
