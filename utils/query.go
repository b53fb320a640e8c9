package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// The listing endpoint accepts field[op]=value query parameters. Fields and
// operators are whitelisted: anything outside the tables below is rejected
// instead of being forwarded to the database.

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindDate
)

var filterableFields = map[string]fieldKind{
	"status":         kindString,
	"position":       kindString,
	"candidateName":  kindString,
	"candidateEmail": kindString,
	"duration":       kindInt,
	"interviewDate":  kindDate,
	"meetingId":      kindString,
}

var filterOperators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

var sortableFields = map[string]bool{
	"createdAt":      true,
	"interviewDate":  true,
	"duration":       true,
	"status":         true,
	"position":       true,
	"candidateName":  true,
	"candidateEmail": true,
}

var selectableFields = map[string]bool{
	"candidateName":  true,
	"candidateEmail": true,
	"position":       true,
	"interviewDate":  true,
	"duration":       true,
	"interviewers":   true,
	"meetingId":      true,
	"joinUrl":        true,
	"startUrl":       true,
	"status":         true,
	"feedback":       true,
	"resume":         true,
	"createdAt":      true,
	"updatedAt":      true,
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type ListQuery struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.D
	Page       int
	Limit      int
}

func (q *ListQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// ParseListQuery builds the find options for GET /api/interviews from raw
// query parameters. select/sort/page/limit are reserved words, everything
// else must be a whitelisted filter.
func ParseListQuery(values url.Values) (*ListQuery, error) {
	q := &ListQuery{
		Filter: bson.M{},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, vals := range values {
		switch key {
		case "select", "sort", "page", "limit":
			continue
		}
		if len(vals) == 0 {
			continue
		}

		field, op, err := splitFilterKey(key)
		if err != nil {
			return nil, err
		}

		kind, ok := filterableFields[field]
		if !ok {
			return nil, fmt.Errorf("cannot filter on field %q", field)
		}

		if op == "" {
			v, err := parseFilterValue(kind, vals[0])
			if err != nil {
				return nil, fmt.Errorf("invalid value for %q: %w", field, err)
			}
			q.Filter[field] = v
			continue
		}

		mongoOp, ok := filterOperators[op]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %q on field %q", op, field)
		}

		var cond interface{}
		if op == "in" {
			parts := strings.Split(vals[0], ",")
			list := make(bson.A, 0, len(parts))
			for _, p := range parts {
				v, err := parseFilterValue(kind, strings.TrimSpace(p))
				if err != nil {
					return nil, fmt.Errorf("invalid value for %q: %w", field, err)
				}
				list = append(list, v)
			}
			cond = list
		} else {
			v, err := parseFilterValue(kind, vals[0])
			if err != nil {
				return nil, fmt.Errorf("invalid value for %q: %w", field, err)
			}
			cond = v
		}

		existing, ok := q.Filter[field].(bson.M)
		if !ok {
			existing = bson.M{}
		}
		existing[mongoOp] = cond
		q.Filter[field] = existing
	}

	sort, err := parseSort(values.Get("sort"))
	if err != nil {
		return nil, err
	}
	q.Sort = sort

	proj, err := parseSelect(values.Get("select"))
	if err != nil {
		return nil, err
	}
	q.Projection = proj

	q.Page = ParseIntDefault(values.Get("page"), DefaultPage)
	q.Limit = ParseIntDefault(values.Get("limit"), DefaultLimit)
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	return q, nil
}

func splitFilterKey(key string) (field, op string, err error) {
	open := strings.IndexByte(key, '[')
	if open == -1 {
		return key, "", nil
	}
	if !strings.HasSuffix(key, "]") {
		return "", "", fmt.Errorf("malformed filter parameter %q", key)
	}
	return key[:open], key[open+1 : len(key)-1], nil
}

func parseFilterValue(kind fieldKind, raw string) (interface{}, error) {
	switch kind {
	case kindInt:
		return strconv.Atoi(raw)
	case kindDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("expected RFC3339 or YYYY-MM-DD date")
		}
		return t, nil
	default:
		return raw, nil
	}
}

func parseSort(raw string) (bson.D, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		// Default: newest first
		return bson.D{{Key: "createdAt", Value: -1}}, nil
	}

	sort := bson.D{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dir := 1
		if strings.HasPrefix(part, "-") {
			dir = -1
			part = part[1:]
		}
		if !sortableFields[part] {
			return nil, fmt.Errorf("cannot sort on field %q", part)
		}
		sort = append(sort, bson.E{Key: part, Value: dir})
	}
	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}, nil
	}
	return sort, nil
}

func parseSelect(raw string) (bson.D, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	proj := bson.D{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !selectableFields[part] {
			return nil, fmt.Errorf("cannot select field %q", part)
		}
		proj = append(proj, bson.E{Key: part, Value: 1})
	}
	if len(proj) == 0 {
		return nil, nil
	}
	return proj, nil
}

type PageLink struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageLink `json:"next,omitempty"`
	Prev *PageLink `json:"prev,omitempty"`
}

// BuildPagination mirrors the list contract: next is present iff records
// follow the current page, prev iff page > 1.
func BuildPagination(page, limit int, total int64) Pagination {
	var p Pagination
	if int64(page*limit) < total {
		p.Next = &PageLink{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageLink{Page: page - 1, Limit: limit}
	}
	return p
}
