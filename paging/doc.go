// Package paging serves fixed-size pages out of an ordered sequence of
// index sets.
//
// An IndexBuffer treats its segments as one logical address space. Page p
// covers positions [p*pageSize, min((p+1)*pageSize, Size())) of the
// concatenation and is materialized on demand into a fresh set whose value
// type is the dominant type of the segments it touches:
//
//	buf, err := paging.New(chunks, 1024)
//	if err != nil {
//		return err
//	}
//	for p := range buf.PageCount() {
//		page, err := buf.CreatePage(p)
//		...
//	}
//
// IndexBuffer holds no locks and caches nothing. Concurrent CreatePage calls
// are safe as long as the segments are immutable.
package paging
