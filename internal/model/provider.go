package model

// maxProviderHops bounds chain walking; a chain longer than this is circular.
const maxProviderHops = 3

// ResolveProvider walks "same-as-live" / "same-as-vod" markers starting at p
// and returns the concrete provider they point to. "same-as-live" resolves to
// the live platform and "same-as-vod" to the configured VOD provider.
//
// An unrecognized or circular chain resolves to the empty Provider, which
// every rate table treats as unknown.
func ResolveProvider(cfg Configuration, p Provider) Provider {
	for hop := 0; hop <= maxProviderHops; hop++ {
		switch {
		case p.IsConcrete():
			return p
		case p == ProviderSameAsLive:
			p = Provider(cfg.Platform)
		case p == ProviderSameAsVOD:
			p = cfg.VODProvider
		case p == "":
			// A missing link in a chain defers to the live platform.
			p = Provider(cfg.Platform)
		default:
			return ""
		}
	}
	return ""
}

// ResolvedVODProvider returns the concrete provider serving VOD.
func (c Configuration) ResolvedVODProvider() Provider {
	return ResolveProvider(c, c.VODProvider)
}

// ResolvedLegacyProvider returns the concrete provider hosting the back catalog.
func (c Configuration) ResolvedLegacyProvider() Provider {
	return ResolveProvider(c, c.LegacyProvider)
}
