// Package conv 提供类型转换、config map 取值等泛型工具，用于简化各 Node 构建器中的重复逻辑。
package conv

import "math"

// ToInt 将 any 转为 int。
// 支持 int、int64、int32，以及没有小数部分的 float64 / float32（JSON 数字）。
func ToInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		if val != math.Trunc(val) {
			return 0, false
		}
		return int(val), true
	case float32:
		if float64(val) != math.Trunc(float64(val)) {
			return 0, false
		}
		return int(val), true
	default:
		return 0, false
	}
}

// ConvertSlice 将 []T 按 convert 转为 []U，convert 返回 false 时整体失败。
func ConvertSlice[T, U any](s []T, convert func(T) (U, bool)) ([]U, bool) {
	if s == nil {
		return nil, true
	}
	out := make([]U, 0, len(s))
	for _, v := range s {
		u, ok := convert(v)
		if !ok {
			return nil, false
		}
		out = append(out, u)
	}
	return out, true
}

// ConfigGet 从 map[string]any（如 YAML/JSON 解析结果）按 key 取 T，取不到或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	t, ok := v.(T)
	if !ok {
		return defaultVal
	}
	return t
}

// ConfigGetInt 从 config 取 int。YAML 常得到 int、JSON 常得到 float64，此处兼容并统一为 int。
func ConfigGetInt(m map[string]any, key string, defaultVal int) int {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	if n, ok := ToInt(v); ok {
		return n
	}
	return defaultVal
}

// ConfigGetIntSlice 从 config 取 []int（如 ks: [1, 3, 5]）。
// key 不存在返回 (nil, true)；存在但元素不是整数时返回 (nil, false)。
func ConfigGetIntSlice(m map[string]any, key string) ([]int, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, true
	}
	switch val := v.(type) {
	case []int:
		return append([]int(nil), val...), true
	case []any:
		return ConvertSlice(val, ToInt)
	default:
		return nil, false
	}
}

// ConfigGetStringSlice 从 config 取 []string（如 features: [a, b]）。
func ConfigGetStringSlice(m map[string]any, key string) ([]string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, true
	}
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...), true
	case []any:
		return ConvertSlice(val, func(e any) (string, bool) {
			s, ok := e.(string)
			return s, ok
		})
	default:
		return nil, false
	}
}
