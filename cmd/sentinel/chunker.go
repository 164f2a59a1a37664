package main

import "strings"

// SplitMessage splits text into chunks no longer than limit characters for
// length-capped transports (WhatsApp allows 1600, we stay under 1500 to be
// safe; Discord allows 2000). Paragraph breaks are preferred split points,
// then sentence breaks; a single oversized sentence is hard-sliced with a
// truncation marker on all pieces but the last. No content is dropped.
func SplitMessage(text string, limit int) []string {
	if limit < 1 || len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	current := ""
	flush := func() {
		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		if len(para) > limit {
			flush()
			chunks = append(chunks, splitParagraph(para, limit)...)
			continue
		}
		switch {
		case current == "":
			current = para
		case len(current)+2+len(para) <= limit:
			current += "\n\n" + para
		default:
			flush()
			current = para
		}
	}
	flush()
	return chunks
}

// splitParagraph splits one oversized paragraph on sentence boundaries,
// greedily packing sentences into chunks of at most limit characters.
func splitParagraph(para string, limit int) []string {
	sentences := strings.Split(para, ". ")
	// Restore the separator so concatenating chunks loses nothing.
	for i := 0; i < len(sentences)-1; i++ {
		sentences[i] += ". "
	}

	var chunks []string
	current := ""
	for _, sentence := range sentences {
		if len(current)+len(sentence) <= limit {
			current += sentence
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
		if len(sentence) > limit {
			chunks = append(chunks, hardSlice(sentence, limit)...)
			continue
		}
		current = sentence
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// hardSlice cuts a sentence that exceeds the limit on its own into
// fixed-size pieces, marking every piece but the last as truncated.
func hardSlice(sentence string, limit int) []string {
	marker := "..."
	step := limit - len(marker)
	if step < 1 {
		marker = ""
		step = limit
	}

	var pieces []string
	for start := 0; start < len(sentence); start += step {
		end := start + step
		if end >= len(sentence) {
			pieces = append(pieces, sentence[start:])
			break
		}
		pieces = append(pieces, sentence[start:end]+marker)
	}
	return pieces
}
