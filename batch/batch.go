// Package batch resolves many queries in parallel.
package batch

import (
	"fmt"
	"sync"

	cmap "github.com/orcaman/concurrent-map"
	"github.com/square/gsel/nodeset"
)

type ResultHandlerFunc func(query string, hosts nodeset.NodeSet)
type ErrorHandlerFunc func(query string, err error)

// Resolver turns one query into the hosts it selects. *query.Parser is a
// Resolver.
type Resolver interface {
	Resolve(query string) (nodeset.NodeSet, error)
}

type Batch struct {
	Maxflight     int
	ResultHandler ResultHandlerFunc
	ErrorHandler  ErrorHandlerFunc
	resolver      Resolver
	queries       []string
	results       cmap.ConcurrentMap
	errors        cmap.ConcurrentMap
}

func New(resolver Resolver, queries ...string) *Batch {
	b := new(Batch)
	b.Maxflight = 50
	b.resolver = resolver
	b.queries = queries
	b.results = cmap.New()
	b.errors = cmap.New()
	// default handler functions
	b.ResultHandler = func(query string, hosts nodeset.NodeSet) {
		fmt.Printf("%s:%s\n", query, hosts)
	}

	b.ErrorHandler = func(query string, err error) {
		fmt.Printf("%s:failed:%s\n", query, err.Error())
	}

	return b
}

// Run resolves every query with at most Maxflight queries in flight and
// invokes the handlers as each one finishes. Handlers may be called
// concurrently.
func (b *Batch) Run() {
	maxflight := b.Maxflight
	if maxflight < 1 {
		maxflight = 1
	}
	maxflightChan := make(chan struct{}, maxflight)
	var wg sync.WaitGroup

	for _, query := range b.queries {
		maxflightChan <- struct{}{}

		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			defer func() {
				<-maxflightChan
			}()

			hosts, err := b.resolver.Resolve(query)
			if err != nil {
				b.errors.Set(query, err)
				b.ErrorHandler(query, err)
				return
			}
			b.results.Set(query, hosts)
			b.ResultHandler(query, hosts)
		}(query)
	}
	wg.Wait()
}

// Results returns the hosts of every query that resolved, keyed by query.
func (b *Batch) Results() map[string]nodeset.NodeSet {
	results := make(map[string]nodeset.NodeSet, b.results.Count())
	for query, hosts := range b.results.Items() {
		results[query] = hosts.(nodeset.NodeSet)
	}
	return results
}

// Errors returns the error of every query that failed, keyed by query.
func (b *Batch) Errors() map[string]error {
	errs := make(map[string]error, b.errors.Count())
	for query, err := range b.errors.Items() {
		errs[query] = err.(error)
	}
	return errs
}
