// Package httpclient provides a typed Go client for the Synology DSM File
// Station web API.
//
// Create a client for a credential and log in:
//
//	client, err := httpclient.New(schema.Credential{
//	   BaseURL:  "https://nas.local:5001",
//	   Username: "admin",
//	   Password: "secret",
//	})
//	if err != nil {
//	   panic(err)
//	}
//	sid, err := client.Login(ctx)
//
// Then pass the session id to each File Station call:
//
//	// List a folder
//	files, err := client.List(ctx, sid, schema.ListRequest{Path: "/photo", Limit: 50})
package httpclient
