package cascade

// Encode packs the cascade into the dump format: a header word giving
// the LUT count, then per LUT a self-describing block
// [block_len, n_fanins, fanin_ids..., out_id, truth_words...] with
// block_len = 3 + n_fanins + ceil(2^n_fanins/64). Truth-table words
// beyond the function's own word count never occur here since
// wordsForVars already returns exactly that count; any unused high bits
// within the last word (n_fanins < 6) are left zero rather than
// replicated, since block_len/n_fanins already say how many bits are
// meaningful to a reader.
func (c *Cascade) Encode() []uint64 {
	out := make([]uint64, 0, 1+len(c.Luts)*8)
	out = append(out, uint64(len(c.Luts)))
	for _, lut := range c.Luts {
		nFanins := len(lut.Fanins)
		nWords := wordsForVars(nFanins)
		blockLen := 3 + nFanins + nWords
		out = append(out, uint64(blockLen), uint64(nFanins))
		for _, f := range lut.Fanins {
			out = append(out, uint64(f))
		}
		out = append(out, uint64(lut.Out))
		if lut.Table != nil {
			out = append(out, lut.Table.Words...)
		} else {
			out = append(out, make([]uint64, nWords)...)
		}
	}
	return out
}
