package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
)

type postingSearchCacheKeyInput struct {
	Title    string `json:"title"`
	Sector   string `json:"sector"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

func normalizeCacheValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func PostingsSearchCacheKey(params PostingListParams) string {
	in := postingSearchCacheKeyInput{
		Title:    normalizeCacheValue(params.Title),
		Sector:   normalizeCacheValue(params.Sector),
		Location: normalizeCacheValue(params.Location),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "postings:search:" + hex.EncodeToString(sum[:])
}

func PostingsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	if strings.HasPrefix(searchKey, "postings:search:") {
		return "postings:lock:" + strings.TrimPrefix(searchKey, "postings:search:")
	}
	return "postings:lock:" + searchKey
}

func ReferenceCacheKey(kind string) string {
	return "reference:" + normalizeCacheValue(kind)
}

func ReferenceByEducationCacheKey(kind string, educationID int64) string {
	return "reference:" + normalizeCacheValue(kind) + ":edu:" + strconv.FormatInt(educationID, 10)
}
