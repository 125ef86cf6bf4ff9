/*
Package directorysdk provides a client for the directory wire API.

The wire API answers three questions: how many accounts exist, which account
an identifier resolves to, and whether an email/password pair authenticates.
The same contract is served by this repository's relational directory under
/api/v1/directory and by older standalone directory services, which is why
responses are returned as loosely typed records and tolerate several shapes:

	client := directorysdk.NewClient("https://directory.example.com/api/v1/directory",
		directorysdk.WithToken(os.Getenv("DIRECTORY_TOKEN")),
	)

	n, err := client.Count(ctx)

	record, err := client.Find(ctx, "alice@example.com")
	if errors.Is(err, directorysdk.ErrNotFound) {
		// unknown identifier
	}

	record, err = client.Validate(ctx, "alice@example.com", "secret")

# Endpoints

Endpoint paths default to /count, /find and /validate and can be overridden
with WithEndpoints for services that mount them elsewhere.

# Error Handling

A 404 from find, or a {"valid": false} body from validate, is reported as
ErrNotFound. Every other non-2xx status is an *APIError; use IsServerError to
tell upstream failures apart from rejected requests.
*/
package directorysdk
