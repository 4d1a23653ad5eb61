package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
)

// ParseCriteria reads the filter parameters shared by list and count.
// The optional filter parameter is folded in after the individual parameters.
func ParseCriteria(values url.Values) (query.Criteria, error) {
	var c query.Criteria
	var err error

	if v, ok := lookup(values, "name"); ok {
		c.Name = &v
	}
	if v, ok := lookup(values, "title"); ok {
		c.Title = &v
	}
	if v, ok := lookup(values, "race"); ok {
		race, err := model.ParseRace(v)
		if err != nil {
			return c, err
		}
		c.Race = &race
	}
	if v, ok := lookup(values, "profession"); ok {
		profession, err := model.ParseProfession(v)
		if err != nil {
			return c, err
		}
		c.Profession = &profession
	}
	if c.After, err = millisParam(values, "after"); err != nil {
		return c, err
	}
	if c.Before, err = millisParam(values, "before"); err != nil {
		return c, err
	}
	if v, ok := lookup(values, "banned"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return c, model.InvalidField("banned", fmt.Sprintf("%q is not a boolean", v))
		}
		c.Banned = &b
	}
	if c.MinExperience, err = intParam(values, "minExperience"); err != nil {
		return c, err
	}
	if c.MaxExperience, err = intParam(values, "maxExperience"); err != nil {
		return c, err
	}
	if c.MinLevel, err = intParam(values, "minLevel"); err != nil {
		return c, err
	}
	if c.MaxLevel, err = intParam(values, "maxLevel"); err != nil {
		return c, err
	}

	if v, ok := lookup(values, "filter"); ok {
		return query.ApplyFilter(c, v)
	}
	return c, nil
}

// ParseQuery reads the list parameters: criteria, order, pageNumber and pageSize
func ParseQuery(values url.Values) (query.Query, error) {
	c, err := ParseCriteria(values)
	if err != nil {
		return query.Query{}, err
	}
	q := query.New(c)

	if v, ok := lookup(values, "order"); ok {
		if q.Order, err = query.ParseOrder(v); err != nil {
			return query.Query{}, err
		}
	}
	if n, err := intParam(values, "pageNumber"); err != nil {
		return query.Query{}, err
	} else if n != nil {
		q.Page.Number = *n
	}
	if n, err := intParam(values, "pageSize"); err != nil {
		return query.Query{}, err
	} else if n != nil {
		q.Page.Size = *n
	}

	if err := q.Validate(); err != nil {
		return query.Query{}, err
	}
	return q, nil
}

// lookup returns a parameter's raw value; a parameter present but blank counts as absent
func lookup(values url.Values, key string) (string, bool) {
	v := values.Get(key)
	return v, strings.TrimSpace(v) != ""
}

func intParam(values url.Values, key string) (*int, error) {
	v, ok := lookup(values, key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, model.InvalidField(key, fmt.Sprintf("%q is not an integer", v))
	}
	return &n, nil
}

func millisParam(values url.Values, key string) (*time.Time, error) {
	v, ok := lookup(values, key)
	if !ok {
		return nil, nil
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return nil, model.InvalidField(key, fmt.Sprintf("%q is not epoch milliseconds", v))
	}
	t := time.UnixMilli(ms).UTC()
	return &t, nil
}
