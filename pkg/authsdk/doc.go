/*
Package authsdk provides a client SDK for the DabotCentral API.

# Overview

The API authenticates callers with emailed one-time passcodes. A verified
code yields a long-lived session token; admins can additionally mint API keys
for programmatic access. Both are sent as bearer credentials.

The package is organized around two types:

  - SDKClient: unauthenticated operations (health, OTP login)
  - Session: operations carrying a bearer credential

Log in with an emailed code:

	client := authsdk.NewSDKClient("https://dabotcentral.example.com/api")

	if err := client.SendOTP(ctx, "me@example.com"); err != nil {
		return err
	}

	session, _, err := client.LoginWithOTP(ctx, "me@example.com", code)
	if err != nil {
		return err
	}

	me, err := session.Me(ctx)

Or use an API key directly:

	session := client.NewSession(os.Getenv("DABOTCENTRAL_API_KEY"))
	todo, err := session.GetDailyTodo(ctx)

# Errors

Non-2xx responses are returned as *APIError. The predefined values can be
matched with errors.Is:

	if errors.Is(err, authsdk.ErrTodoNotFound) {
		// nothing written yet
	}

The same values are used by the server to write its error responses, so the
wire format is defined in one place.
*/
package authsdk
