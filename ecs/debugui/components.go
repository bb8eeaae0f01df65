package debugui

import (
	"github.com/plus3/ecsloop/ecs"
)

type EntityBrowserPanel struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	hasSelection       bool
	filterText         string
	filterCapability   *uint64
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorPanel struct {
	selectedEntityId ecs.EntityId
}

type SystemViewerPanel struct {
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsPanel struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	lastTick      uint64
}

type CapabilityMatcherPanel struct {
	selectedComponentTypes map[string]bool
}

type OptionsPanel struct{}
