package route

import (
	"fmt"
	"sort"
)

const (
	campaignManager = "campaignmanager.php"
	bootstrap       = "bootstrap.php"
	repManager      = "repmanager.php"
	userProfiles    = "userprofiles.php"
	adminManager    = "adminmanager.php"
)

var definitions = []Definition{
	{
		Target: "email_campaigns/list",
		Path:   campaignManager,
		Query:  []Field{Session(), Fixed("action", "list")},
	},
	{
		Target: "email_campaigns/create",
		Path:   campaignManager,
		Query: []Field{
			Session(),
			Fixed("action", "new"),
			Param("use_template", "use_template"),
			Param("mailstream", "mailstream"),
		},
	},
	{
		Target: "email_campaigns/blocks/create",
		Path:   bootstrap,
		Query:  []Field{Fixed("r", "contentBlocks/selector"), Session(), Param("mailstream", "mailstream")},
	},
	{
		Target: "email_analysis/details",
		Path:   repManager,
		Query: []Field{
			Session(),
			Fixed("changed", "0"),
			Fixed("action", "analysis"),
			Param("camp_id", "campaign_id"),
			Param("launch_id", "launch_id"),
			Fixed("page", "1"),
			Fixed("search", ""),
			Fixed("step", "1"),
			Fixed("save_pref", "on"),
			Fixed("tabdetails_length", "10"),
			Fixed("tabfull_length", "10"),
			Fixed("campaign_category", ""),
			Fixed("admin", "n"),
			Fixed("status", "current"),
			Fixed("type", "all"),
		},
	},
	{
		Target: "administrators/list",
		Path:   bootstrap,
		Query: []Field{
			Session(),
			Fixed("r", "service"),
			Fixed("service", "user-management"),
			Fixed("service_path", "/admin/list"),
		},
	},
	{
		Target: "bounce_management/list",
		Path:   adminManager,
		Query:  []Field{Session(), Fixed("action", "invmails"), Param("only_mailstreams", "only_mailstreams")},
	},
	programRoute("program/edit"),
	programRoute("program/report"),
	programRoute("program/summary"),
	{
		Target: "contact/edit",
		Path:   userProfiles,
		Query: []Field{
			Session(),
			Fixed("action", "show"),
			Param("uid", "uid"),
			Param("sback", "return_url"),
		},
	},
	{
		Target: "trendsreporting/trends/campaigns",
		Path:   bootstrap,
		Query:  []Field{Session(), Fixed("r", "trendsreporting/trends"), Param("campaignIds", "campaign_ids")},
	},
	{
		Target: "trendsreporting/trends/campaign",
		Path:   repManager,
		Query: []Field{
			Fixed("action", "analysis"),
			Fixed("page", "1"),
			Fixed("step", "11"),
			Session(),
			Param("camp_id", "campaign_id"),
		},
	},
	{
		Target: "permission_settings/policies",
		Path:   bootstrap,
		Query:  []Field{Session(), Fixed("r", "permissionSettings")},
	},
	{
		Target:   "permission_settings/roles",
		Path:     bootstrap,
		Query:    []Field{Session(), Fixed("r", "permissionSettings")},
		Fragment: &Fragment{Segments: []Segment{Lit("roles")}},
	},
	{
		Target:   "tactics/list",
		Path:     bootstrap,
		Query:    []Field{Session(), Fixed("r", "tactics"), Param("kpi", "kpi_fake")},
		Fragment: &Fragment{Query: []Field{Param("kpi", "kpi")}},
	},
	{
		Target:   "tactics/details",
		Path:     bootstrap,
		Query:    []Field{Session(), Fixed("r", "tactics")},
		Fragment: &Fragment{Query: []Field{Param("id", "id")}},
	},
	pushRoute("me_push/edit", Lit("campaigns"), Var("id")),
	pushRoute("me_push/report", Lit("reports"), Var("id")),
	pushRoute("me_push/campaigns", Lit("campaigns")),
	pushRoute("me_push/inapp-campaigns", Lit("inapp-campaigns")),
	eventCenterRoute("rti/edit", Lit("edit"), Lit("rti"), Var("id")),
	eventCenterRoute("rti/report", Lit("reports"), Var("id"), Lit("overview")),
}

func programRoute(target string) Definition {
	return Definition{
		Target: target,
		Path:   bootstrap,
		Query:  []Field{Session(), Fixed("r", target), Param("programId", "program_id")},
	}
}

func pushRoute(target string, segments ...Segment) Definition {
	return Definition{
		Target: target,
		Path:   bootstrap,
		Query: []Field{
			Session(),
			Fixed("r", "service/index"),
			Fixed("service", "push-notification"),
			Fixed("iframe", "show"),
		},
		Fragment:                &Fragment{Segments: segments},
		AmpersandBeforeFragment: true,
	}
}

func eventCenterRoute(target string, segments ...Segment) Definition {
	return Definition{
		Target:   target,
		Path:     bootstrap,
		Query:    []Field{Session(), Fixed("r", "eventCenter/index")},
		Fragment: &Fragment{Segments: segments},
	}
}

var table = mustIndex(definitions)

func mustIndex(defs []Definition) map[string]Definition {
	idx := make(map[string]Definition, len(defs))
	for _, d := range defs {
		if _, dup := idx[d.Target]; dup {
			panic(fmt.Sprintf("route: duplicate target %q", d.Target))
		}
		idx[d.Target] = d
	}
	return idx
}

// Targets returns every registered target id in sorted order.
func Targets() []string {
	out := make([]string, 0, len(table))
	for t := range table {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func Lookup(target string) (Definition, bool) {
	d, ok := table[target]
	return d, ok
}
