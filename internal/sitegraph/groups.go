package sitegraph

import (
	"strings"

	"github.com/jonathan/listing-site-builder/internal/categories"
	"github.com/jonathan/listing-site-builder/internal/resolve"
	"github.com/jonathan/listing-site-builder/internal/types"
)

// buildGroups computes every category group observed across the active
// listings: one per distinct area, feature/state tag and price bucket.
// Groups exist only while at least one listing carries the value, so a
// category page disappears the build after its last listing does. Input is
// newest-first and member order preserves that.
func buildGroups(newestFirst []*types.Listing) []*types.CategoryGroup {
	var groups []*types.CategoryGroup
	index := make(map[string]*types.CategoryGroup)
	member := make(map[string]struct{})

	add := func(kind types.PageKind, name string, l *types.Listing) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		// Tags that differ only in case or padding share one group; the
		// first-seen spelling is the display name.
		key := string(kind) + "\x00" + categories.GroupKey(name)
		group, ok := index[key]
		if !ok {
			group = &types.CategoryGroup{
				Kind: kind,
				Name: name,
				Slug: resolve.Slugify(name),
			}
			index[key] = group
			groups = append(groups, group)
		}
		memberKey := key + "\x00" + l.ID
		if _, dup := member[memberKey]; dup {
			return
		}
		member[memberKey] = struct{}{}
		group.Listings = append(group.Listings, l)
	}

	for _, l := range newestFirst {
		add(types.PageArea, l.Area, l)
		for _, tag := range l.StateTags {
			add(types.PageTag, tag, l)
		}
		for _, tag := range l.FeatureTags {
			add(types.PageTag, tag, l)
		}
		add(types.PagePrice, l.PriceBucket, l)
	}

	return groups
}

// categoryPage renders a group into its index page descriptor. Category
// pages live two directories deep, so listing links climb out twice.
func categoryPage(group *types.CategoryGroup) types.Page {
	payload := &types.CategoryPayload{
		Kind:     group.Kind,
		Name:     group.Name,
		Slug:     group.Slug,
		BackHref: "../../index.html",
	}
	for _, l := range group.Listings {
		payload.Cards = append(payload.Cards, types.Card{
			Href:  "../../" + l.Slug + "/",
			Title: cardTitle(l),
			Meta:  cardMeta(l),
		})
	}

	return types.Page{
		Path:    categoryDir(group.Kind) + "/" + group.Slug + "/index.html",
		Kind:    group.Kind,
		Payload: payload,
	}
}

// categoryDir maps a category kind to its directory in the managed
// namespace.
func categoryDir(kind types.PageKind) string {
	switch kind {
	case types.PageArea:
		return "area"
	case types.PageTag:
		return "tag"
	case types.PagePrice:
		return "price"
	case types.PageKeyword:
		return "k"
	default:
		return string(kind)
	}
}
