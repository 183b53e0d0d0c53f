/*
Package matchsdk provides a client SDK for the mutual matching service, along
with the wire types and error values shared with the server.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (register, login, health, JWKS)
  - Session: operations that need a bearer token (crushes, matches, logout)

Create an SDKClient and log in to obtain a Session:

	client := matchsdk.NewSDKClient("https://mutual.example.com")

	if _, err := client.Register(ctx, "alice", "secret"); err != nil {
		return err
	}

	session, err := client.Login(ctx, "alice", "secret")
	if err != nil {
		return err
	}

	_, err = session.AddCrush(ctx, "bob")
	matches, err := session.GetMatches(ctx)

A Session carries the access token and the user id returned by login. Tokens
are not refreshed: once the token expires every call fails with
ErrUnauthorized and the caller logs in again.

# Errors

Every non-2xx response is returned as an *APIError. Compare against the
predefined values with errors.Is, which matches on the error code:

	_, err := client.Register(ctx, "alice", "secret")
	if errors.Is(err, matchsdk.ErrUsernameTaken) {
		// pick another name
	}

The server writes the same values with APIError.WriteError, so both sides
agree on codes and statuses.
*/
package matchsdk
