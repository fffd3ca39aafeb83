package systems

import (
	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/ecs"
	"github.com/decker502/buyornot/pkg/utils"
)

// FadeLayerSystem 叙事层透明度过渡系统
// 每个叙事层是一个带 FadeLayerComponent 的实体，Current 以 EaseOutCubic 追赶 Target
type FadeLayerSystem struct {
	entityManager *ecs.EntityManager
	layers        [components.LayerCount]ecs.EntityID

	// settled 记录每层是否已到达目标，用于只触发一次 onSettled
	settled   [components.LayerCount]bool
	onSettled func(layer components.LayerID, value float64)
}

// NewFadeLayerSystem 为每个叙事层创建实体，初始透明度即为 initial
func NewFadeLayerSystem(em *ecs.EntityManager, fade config.FadeConfig, initial components.LayerTargets) *FadeLayerSystem {
	s := &FadeLayerSystem{entityManager: em}
	for l := components.LayerID(0); l < components.LayerCount; l++ {
		duration := fade.Default
		if l == components.LayerThanks {
			duration = fade.Thanks
		}
		comp := &components.FadeLayerComponent{
			Layer:    l,
			Duration: duration,
		}
		comp.Current = initial[l]
		comp.Retarget(initial[l])
		// 初始状态无需过渡
		comp.Advance(duration)

		id := em.CreateEntity()
		ecs.AddComponent(em, id, comp)
		s.layers[l] = id
		s.settled[l] = true
	}
	return s
}

// SetOnSettled 设置某层到达新目标时的回调
func (s *FadeLayerSystem) SetOnSettled(fn func(layer components.LayerID, value float64)) {
	s.onSettled = fn
}

// SetTargets 更新各层目标
func (s *FadeLayerSystem) SetTargets(targets components.LayerTargets) {
	for l, id := range s.layers {
		comp, ok := ecs.GetComponent[*components.FadeLayerComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if comp.Target != targets[l] {
			s.settled[l] = false
		}
		comp.Retarget(targets[l])
	}
}

// Update 推进所有层的过渡
// 参数：
//   - dt: 时间增量（秒）
func (s *FadeLayerSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FadeLayerComponent](s.entityManager)
	for _, entity := range entities {
		comp, ok := ecs.GetComponent[*components.FadeLayerComponent](s.entityManager, entity)
		if !ok {
			continue
		}
		from, progress := comp.Advance(dt)
		comp.Current = utils.Lerp(from, comp.Target, utils.EaseOutCubic(progress))

		if progress >= 1 && !s.settled[comp.Layer] {
			s.settled[comp.Layer] = true
			if s.onSettled != nil {
				s.onSettled(comp.Layer, comp.Current)
			}
		}
	}
}

// Opacity 返回某层当前透明度
func (s *FadeLayerSystem) Opacity(layer components.LayerID) float64 {
	if layer < 0 || layer >= components.LayerCount {
		return 0
	}
	comp, ok := ecs.GetComponent[*components.FadeLayerComponent](s.entityManager, s.layers[layer])
	if !ok {
		return 0
	}
	return comp.Current
}

// Opacities 返回全部层的当前透明度
func (s *FadeLayerSystem) Opacities() components.LayerTargets {
	var out components.LayerTargets
	for l := components.LayerID(0); l < components.LayerCount; l++ {
		out[l] = s.Opacity(l)
	}
	return out
}
