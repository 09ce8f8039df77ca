// Package credentials holds the bearer token and admin API key used to
// authenticate requests.
//
// A [Store] keeps the current values in memory and writes every change
// through to a [Storage] backend. Values are read from the backend once, when
// the Store is created. Three backends are provided: [MemoryStorage],
// [FileStorage] (a JSON file readable only by its owner) and [RedisStorage].
package credentials
