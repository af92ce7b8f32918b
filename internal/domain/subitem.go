package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SubItem is an independently schedulable component of a flashcard: the
// single slot of a basic card, one blank of a cloze card, or one mask of
// an image-occlusion card.
//
// SubID is the empty string for a basic card's implicit slot, the blank
// number for a cloze card, and the mask id for an occlusion card. Memory
// state and review log rows are keyed by (learner, card, SubID).
type SubItem struct {
	SubID  string `json:"sub_id"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer,omitempty"`
	Label  string `json:"label,omitempty"`
}

// clozeBlankRe matches {{cN::body}} where body is "answer" or
// "answer::hint". The body is split on "::" after matching.
var clozeBlankRe = regexp.MustCompile(`\{\{c(\d+)::(.*?)\}\}`)

// splitClozeBody separates a blank's body into answer and optional hint.
func splitClozeBody(body string) (answer, hint string) {
	if i := strings.Index(body, "::"); i >= 0 {
		return body[:i], body[i+2:]
	}
	return body, ""
}

// Decompose expands the flashcard into its schedulable sub-items, one
// match arm per kind. A card whose content yields zero sub-items is
// malformed: the error wraps ErrMalformedContent so callers can exclude
// the card from queues while surfacing the failure.
func (c *Flashcard) Decompose() ([]SubItem, error) {
	switch c.Kind {
	case KindBasic:
		var content BasicContent
		if err := c.DecodeContent(&content); err != nil {
			return nil, err
		}
		return []SubItem{{
			SubID:  "",
			Prompt: content.Front,
			Answer: content.Back,
		}}, nil

	case KindCloze:
		var content ClozeContent
		if err := c.DecodeContent(&content); err != nil {
			return nil, err
		}
		return decomposeCloze(c.ID.String(), content.Text)

	case KindImageOcclusion:
		var content OcclusionContent
		if err := c.DecodeContent(&content); err != nil {
			return nil, err
		}
		if len(content.Masks) == 0 {
			return nil, fmt.Errorf("%w: occlusion card %s has no masks", ErrMalformedContent, c.ID)
		}
		items := make([]SubItem, 0, len(content.Masks))
		for _, mask := range content.Masks {
			if mask.ID == "" {
				return nil, fmt.Errorf("%w: occlusion card %s has a mask without an id", ErrMalformedContent, c.ID)
			}
			items = append(items, SubItem{
				SubID:  mask.ID,
				Prompt: content.ImagePath,
				Label:  mask.Label,
			})
		}
		return items, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFlashcardKind, c.Kind)
	}
}

// DecodeContent unmarshals the card's JSONB content into the typed
// content struct for its kind. Decode failures wrap ErrMalformedContent.
func (c *Flashcard) DecodeContent(dst any) error {
	if err := json.Unmarshal(c.Content, dst); err != nil {
		return fmt.Errorf("%w: card %s: %v", ErrMalformedContent, c.ID, err)
	}
	return nil
}

// decomposeCloze yields one sub-item per distinct blank number, in
// ascending numeric order. Duplicate numbers (the same blank occluded in
// several places) collapse into one sub-item whose prompt is the full
// text with that blank elided.
func decomposeCloze(cardID, text string) ([]SubItem, error) {
	matches := clozeBlankRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: cloze card %s has no numbered blanks", ErrMalformedContent, cardID)
	}

	answers := make(map[int]string)
	var indexes []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: cloze card %s has blank index %q", ErrMalformedContent, cardID, m[1])
		}
		if _, seen := answers[n]; !seen {
			answer, _ := splitClozeBody(m[2])
			answers[n] = answer
			indexes = append(indexes, n)
		}
	}
	sort.Ints(indexes)

	items := make([]SubItem, 0, len(indexes))
	for _, n := range indexes {
		items = append(items, SubItem{
			SubID:  strconv.Itoa(n),
			Prompt: elideClozeBlank(text, n),
			Answer: answers[n],
		})
	}
	return items, nil
}

// elideClozeBlank renders the cloze text with blank n replaced by "[...]"
// (or "[hint]" when the blank carries one) and every other blank revealed.
func elideClozeBlank(text string, n int) string {
	return clozeBlankRe.ReplaceAllStringFunc(text, func(match string) string {
		m := clozeBlankRe.FindStringSubmatch(match)
		idx, _ := strconv.Atoi(m[1])
		answer, hint := splitClozeBody(m[2])
		if idx != n {
			return answer
		}
		if hint != "" {
			return "[" + hint + "]"
		}
		return "[...]"
	})
}
