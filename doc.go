// Package soulnest provides a Go client SDK for the soulnest backend.
//
// Every call goes through one request pipeline: credentials are injected,
// request interceptors run, the request is sent with retries for idempotent
// methods, and the response envelope is unwrapped before response
// interceptors see it. Failures are reported as *Error with one of five
// codes: ENCRYPTION_ERROR, JSON_PARSE_ERROR, BUSINESS_ERROR, TIMEOUT_ABORT
// and NETWORK_ERROR.
//
// Basic usage:
//
//	client, err := soulnest.New(soulnest.WithBaseURL("https://api.example.com"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Log in; the password is sealed with the server public key
//	if _, err := client.Users().Login(ctx, "alice", "secret"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// The bearer token is now sent on every call
//	diaries, err := client.Diaries().List(ctx)
//
// Arbitrary endpoints can be called with Request:
//
//	posts, err := soulnest.Request[[]soulnest.Post](ctx, client, http.MethodGet,
//	    "/api/community/posts", soulnest.WithParams(soulnest.NewQuery("status", 1)))
//
// Error handling:
//
//	var apiErr *soulnest.Error
//	switch {
//	case errors.Is(err, soulnest.ErrBusiness):
//	    env, _ := soulnest.BusinessEnvelope(err)
//	    fmt.Println("rejected:", env.Message)
//	case errors.Is(err, soulnest.ErrTimeoutAbort):
//	    fmt.Println("cancelled or timed out")
//	case errors.As(err, &apiErr):
//	    fmt.Println(apiErr.Code, apiErr.Status)
//	}
package soulnest
