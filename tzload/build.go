package tzload

import (
	"fmt"
	"sort"

	"github.com/lfriedrich/zoneshift/internal/calmath"
	"github.com/lfriedrich/zoneshift/zonedb"
)

// build assembles parsed files into a zone registry, resolving policy
// references and links and enforcing the engine's input contract.
func build(files []*file) (zonedb.ZoneRegistry, error) {
	policies := buildPolicies(files)

	registry := make(zonedb.ZoneRegistry)

	// Group zone lines by zone name. A continuation line belongs to the most
	// recently named zone.
	for _, f := range files {
		var (
			lines    []zoneLine
			lastName string
		)
		flush := func() error {
			if len(lines) == 0 {
				return nil
			}
			zi, err := buildZone(lastName, lines, policies)
			if err != nil {
				return fmt.Errorf("zone %s: %w", lastName, err)
			}
			if _, ok := registry[lastName]; ok {
				return fmt.Errorf("zone %s: defined twice", lastName)
			}
			registry[lastName] = zi
			lines = nil
			return nil
		}
		for _, l := range f.zoneLines {
			if !l.continuation {
				if err := flush(); err != nil {
					return nil, err
				}
				lastName = l.name
			}
			lines = append(lines, l)
		}
		if err := flush(); err != nil {
			return nil, err
		}
	}

	// Resolve links after all zones are known. Chains of links are followed
	// to the final zone; the link keeps its own name.
	for _, f := range files {
		for _, l := range f.linkLines {
			if _, ok := registry[l.name]; ok {
				return nil, fmt.Errorf("link %s: name already defined", l.name)
			}
			registry[l.name] = &zonedb.ZoneInfo{Name: l.name}
		}
	}
	for _, f := range files {
		for _, l := range f.linkLines {
			target, err := resolveLink(files, l.target, registry)
			if err != nil {
				return nil, fmt.Errorf("link %s: %w", l.name, err)
			}
			registry[l.name].Link = target
		}
	}

	return registry, nil
}

// resolveLink follows a chain of link names to the zone that carries eras.
func resolveLink(files []*file, target string, registry zonedb.ZoneRegistry) (*zonedb.ZoneInfo, error) {
	seen := make(map[string]bool)
	for {
		if seen[target] {
			return nil, fmt.Errorf("link cycle at %q", target)
		}
		seen[target] = true

		zi := registry[target]
		if zi == nil {
			return nil, fmt.Errorf("unknown target %q", target)
		}
		if len(zi.Eras) > 0 {
			return zi, nil
		}
		// The target is itself a link; follow the raw link lines because its
		// Link field may not be resolved yet.
		next := ""
		for _, f := range files {
			for _, l := range f.linkLines {
				if l.name == target {
					next = l.target
				}
			}
		}
		if next == "" {
			return nil, fmt.Errorf("target %q has no eras", target)
		}
		target = next
	}
}

// buildPolicies groups rule lines by name into sorted policies.
func buildPolicies(files []*file) map[string]*zonedb.ZonePolicy {
	policies := make(map[string]*zonedb.ZonePolicy)
	for _, f := range files {
		for _, r := range f.ruleLines {
			p := policies[r.name]
			if p == nil {
				p = &zonedb.ZonePolicy{Name: r.name}
				policies[r.name] = p
			}
			dow, dom := r.on.encode()
			p.Rules = append(p.Rules, zonedb.ZoneRule{
				FromYear:     r.from,
				ToYear:       r.to,
				InMonth:      r.in,
				OnDayOfWeek:  dow,
				OnDayOfMonth: dom,
				AtSeconds:    r.atSeconds,
				AtSuffix:     r.atSuffix,
				DeltaSeconds: r.saveSeconds,
				Letter:       r.letter,
			})
		}
	}
	for _, p := range policies {
		rules := p.Rules
		sort.SliceStable(rules, func(i, j int) bool {
			if rules[i].FromYear != rules[j].FromYear {
				return rules[i].FromYear < rules[j].FromYear
			}
			return rules[i].InMonth < rules[j].InMonth
		})
	}
	return policies
}

func buildZone(name string, lines []zoneLine, policies map[string]*zonedb.ZonePolicy) (*zonedb.ZoneInfo, error) {
	zi := &zonedb.ZoneInfo{Name: name}
	if lines[len(lines)-1].until != nil {
		return nil, fmt.Errorf("era %d: the last era must be open-ended", len(lines)-1)
	}
	for i, l := range lines {
		if l.until == nil && i != len(lines)-1 {
			return nil, fmt.Errorf("era %d: only the last era may omit UNTIL", i)
		}

		era := zonedb.ZoneEra{
			OffsetSeconds: l.offsetSeconds,
			Format:        l.format,
		}

		switch l.policy.kind {
		case policyRefNone:
			era.Policy = zonedb.PolicyRef{Kind: zonedb.PolicyNone}
		case policyRefFixed:
			era.Policy = zonedb.PolicyRef{Kind: zonedb.PolicyFixed, DeltaSeconds: l.policy.delta}
		case policyRefName:
			p := policies[l.policy.name]
			if p == nil {
				return nil, fmt.Errorf("era %d: unknown rule set %q", i, l.policy.name)
			}
			era.Policy = zonedb.PolicyRef{Kind: zonedb.PolicyNamed, Policy: p}
		}

		if l.until == nil {
			era.UntilYear = zonedb.MaxUntilYear
			era.UntilMonth = 1
			era.UntilDay = 1
			era.UntilSuffix = zonedb.SuffixW
		} else {
			u := l.until
			year := u.year
			dow, dom := u.day.encode()
			month, day := calmath.DayOfMonth(year, u.month, dow, dom)
			// A day expression near a year boundary can shift the month
			// across it.
			switch month {
			case 0:
				year--
				month = 12
			case 13:
				year++
				month = 1
			}
			era.UntilYear = year
			era.UntilMonth = month
			era.UntilDay = day
			era.UntilSeconds = u.seconds
			era.UntilSuffix = u.suffix
		}

		if len(zi.Eras) > 0 {
			if !eraUntilBefore(&zi.Eras[len(zi.Eras)-1], &era) {
				return nil, fmt.Errorf("era %d: UNTIL not in ascending order", i)
			}
		}
		zi.Eras = append(zi.Eras, era)
	}
	return zi, nil
}

// eraUntilBefore reports whether a's UNTIL is strictly before b's, comparing
// the date and time fields and ignoring the suffix.
func eraUntilBefore(a, b *zonedb.ZoneEra) bool {
	av := [4]int{a.UntilYear, a.UntilMonth, a.UntilDay, a.UntilSeconds}
	bv := [4]int{b.UntilYear, b.UntilMonth, b.UntilDay, b.UntilSeconds}
	for i := range av {
		if av[i] != bv[i] {
			return av[i] < bv[i]
		}
	}
	return false
}
