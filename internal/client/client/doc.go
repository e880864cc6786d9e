// Package client talks to the blog REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): categories,
//     post previews, filtered search, post CRUD and pre-signed URL issuance.
//  2. A concrete HTTP implementation (see RESTClient) built on resty. It
//     attaches the API-Key header to mutating calls only, tags every request
//     with an X-Request-ID, and encodes create/update calls as multipart forms.
//
// # Error Handling
//
// Transport failures and non-2xx responses are wrapped so that errors.Is
// matches the operation's category: common.ErrFetch for reads,
// common.ErrMutation for create/update/delete, common.ErrSigning for
// pre-signed URL issuance. Non-2xx responses are *APIError values carrying the
// server's message.
//
// All operations accept context.Context and honor cancellation.
package client
