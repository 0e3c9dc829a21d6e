package icarus_test

import (
	"context"
	"fmt"
	"log"

	icarus "github.com/ICARUS-tooling/icarus2-modeling-framework-sub015"
	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/collect"
	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/index"
)

// Example_pager demonstrates paging through chunks produced by a sorted
// builder.
func Example_pager() {
	b, err := collect.NewUnlimitedSorted(index.Integer, 4)
	if err != nil {
		log.Fatal(err)
	}
	for _, v := range []int64{3, 5, 8, 13, 21, 34, 55, 89, 144, 233} {
		if err := b.Add(v); err != nil {
			log.Fatal(err)
		}
	}
	chunks, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	p, err := icarus.Open(chunks, 3)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	for i := range p.PageCount() {
		page, err := p.Page(context.Background(), i)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(i, index.Values(page))
	}
	// Output:
	// 0 [3 5 8]
	// 1 [13 21 34]
	// 2 [55 89 144]
	// 3 [233]
}

// Example_unsortedBuilder demonstrates deduplicating unsorted input.
func Example_unsortedBuilder() {
	b, err := collect.NewLimitedUnsortedInt(100, 3)
	if err != nil {
		log.Fatal(err)
	}
	for _, v := range []int64{9, 2, 7, 2, 9, 4} {
		if err := b.Add(v); err != nil {
			log.Fatal(err)
		}
	}
	chunks, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range chunks {
		fmt.Println(c.ValueType(), index.Values(c))
	}
	// Output:
	// integer [2 4 7]
	// integer [9]
}
