// Package acl is the anti-corruption layer between downstream HTTP services
// and the domain.
//
// Adapters in this package own the wire DTOs of the services they call. DTOs
// stay unexported and are translated into domain types before they leave the
// package, and every transport or status failure is mapped to a domain error:
//
//   - 404 Not Found → [domain.ErrNotFound]
//   - other 4xx → [domain.ErrValidation]
//   - 429, 5xx, transport failures, open circuit, undecodable body → [domain.ErrUnavailable]
//
// An adapter embeds [BaseAdapter] for request execution and error mapping and
// uses [DecodeResponse] and [TranslateSlice] for the body:
//
//	body, err := a.Get(ctx, "", query, "fetch quotes", topic)
//	if err != nil {
//	    return nil, err // already a domain error
//	}
//
//	records, err := acl.DecodeResponse[[]quoteRecord](body)
//
// [QuoteClient] is the adapter for the remote quote service.
package acl
