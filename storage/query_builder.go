package storage

import (
	"fmt"
	"strconv"
	"strings"

	"realestate-api/models"
)

const listingColumns = "property_id, price, bedrooms, bathrooms, square_feet, city, date_listed"

// placeholderFunc renders the n-th (1-based) bind parameter for a dialect.
type placeholderFunc func(n int) string

func questionPlaceholder(int) string { return "?" }

func dollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

// queryBuilder accumulates WHERE conditions and their bound arguments.
// Values only ever travel through args.
type queryBuilder struct {
	placeholder placeholderFunc
	conditions  []string
	args        []interface{}
}

func newQueryBuilder(ph placeholderFunc) *queryBuilder {
	return &queryBuilder{
		placeholder: ph,
		conditions:  []string{"1=1"},
		args:        make([]interface{}, 0),
	}
}

// addCondition appends a condition whose %s verbs are replaced, in order,
// by one placeholder per arg.
func (qb *queryBuilder) addCondition(format string, args ...interface{}) {
	phs := make([]interface{}, len(args))
	for i, arg := range args {
		qb.args = append(qb.args, arg)
		phs[i] = qb.placeholder(len(qb.args))
	}
	qb.conditions = append(qb.conditions, fmt.Sprintf(format, phs...))
}

func (qb *queryBuilder) build() (string, []interface{}) {
	return "SELECT " + listingColumns + " FROM listings WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// buildListingsQuery translates f into a parameterised SELECT.
func buildListingsQuery(ph placeholderFunc, f models.Filter) (string, []interface{}) {
	qb := newQueryBuilder(ph)

	switch {
	case f.PriceMin != nil && f.PriceMax != nil:
		qb.addCondition("price BETWEEN %s AND %s", *f.PriceMin, *f.PriceMax)
	case f.PriceMin != nil:
		qb.addCondition("price >= %s", *f.PriceMin)
	case f.PriceMax != nil:
		qb.addCondition("price <= %s", *f.PriceMax)
	}
	if f.Bedrooms != nil {
		qb.addCondition("bedrooms >= %s", *f.Bedrooms)
	}
	if f.Bathrooms != nil {
		qb.addCondition("bathrooms >= %s", *f.Bathrooms)
	}
	if f.City != nil {
		qb.addCondition("city = %s", *f.City)
	}

	return qb.build()
}
