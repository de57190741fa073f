package ecs

import (
	"reflect"
	"sort"
)

// GetComponent 按类型参数获取组件，省去调用方的 reflect.TypeOf 和类型断言
//
// 用法:
//
//	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 按类型参数检查组件是否存在
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	var zero T
	return em.HasComponent(id, reflect.TypeOf(zero))
}

// GetEntitiesWith1 查询拥有组件 A 的实体，按ID升序返回
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	var a A
	return sortedIDs(em.GetEntitiesWith(reflect.TypeOf(a)))
}

// GetEntitiesWith2 查询同时拥有组件 A 和 B 的实体，按ID升序返回
// 排序保证渲染和遍历顺序在帧之间稳定
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	var a A
	var b B
	return sortedIDs(em.GetEntitiesWith(reflect.TypeOf(a), reflect.TypeOf(b)))
}

func sortedIDs(ids []EntityID) []EntityID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
