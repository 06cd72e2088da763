package postgres

// insertChunkSize keeps multi-row inserts well under the postgres
// placeholder limit.
const insertChunkSize = 500

func int64Args(ids []int64) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	return out
}

func chunked(total int, fn func(lo, hi int) error) error {
	for lo := 0; lo < total; lo += insertChunkSize {
		hi := lo + insertChunkSize
		if hi > total {
			hi = total
		}
		if err := fn(lo, hi); err != nil {
			return err
		}
	}
	return nil
}
