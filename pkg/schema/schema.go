// Package schema 声明式 JSON 结构约束
// 同一份声明既用于生成给模型的输出格式说明，也用于校验模型返回的 JSON
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"adcopy_studio_v1/internal/apperr"
)

// Schema JSON 节点约束
type Schema interface {
	validate(path string, v any) error
	describe(b *strings.Builder, indent int)
}

// ==================== 入口函数 ====================

// Validate 校验已解码的 JSON 值（需使用 UseNumber 解码）
func Validate(s Schema, v any) error {
	return s.validate("", v)
}

// ValidateJSON 解码并校验原始 JSON
func ValidateJSON(s Schema, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return apperr.MalformedResponse("JSON 解析失败", err)
	}
	return Validate(s, v)
}

// Describe 生成给模型阅读的结构说明
func Describe(s Schema) string {
	var b strings.Builder
	s.describe(&b, 0)
	return b.String()
}

// ==================== 字符串 ====================

type StringSchema struct {
	enum []string
}

// String 非空字符串
func String() *StringSchema {
	return &StringSchema{}
}

// Enum 限定取值集合
func Enum(values ...string) *StringSchema {
	return &StringSchema{enum: values}
}

// Values 枚举值（非枚举返回 nil）
func (s *StringSchema) Values() []string {
	return s.enum
}

// Allows 判断取值是否合法
func (s *StringSchema) Allows(v string) bool {
	if len(s.enum) == 0 {
		return strings.TrimSpace(v) != ""
	}
	for _, e := range s.enum {
		if e == v {
			return true
		}
	}
	return false
}

func (s *StringSchema) validate(path string, v any) error {
	str, ok := v.(string)
	if !ok {
		return typeMismatch(path, "string", v)
	}
	if !s.Allows(str) {
		if len(s.enum) > 0 {
			return apperr.SchemaViolation(pathOrRoot(path), fmt.Sprintf("value %q not in %s", str, strings.Join(s.enum, "|")))
		}
		return apperr.SchemaViolation(pathOrRoot(path), "empty string")
	}
	return nil
}

func (s *StringSchema) describe(b *strings.Builder, _ int) {
	if len(s.enum) == 0 {
		b.WriteString("string")
		return
	}
	quoted := make([]string, len(s.enum))
	for i, e := range s.enum {
		quoted[i] = strconv.Quote(e)
	}
	b.WriteString(strings.Join(quoted, " | "))
}

// ==================== 数字 ====================

type NumberSchema struct {
	min, max *float64
}

// Number 任意数字
func Number() *NumberSchema {
	return &NumberSchema{}
}

// Score 0-10 评分
func Score() *NumberSchema {
	return Number().Range(0, 10)
}

// Range 闭区间约束
func (s *NumberSchema) Range(lo, hi float64) *NumberSchema {
	s.min, s.max = &lo, &hi
	return s
}

func (s *NumberSchema) validate(path string, v any) error {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return apperr.SchemaViolation(pathOrRoot(path), "invalid number "+n.String())
		}
		f = parsed
	case float64:
		f = n
	default:
		return typeMismatch(path, "number", v)
	}

	if (s.min != nil && f < *s.min) || (s.max != nil && f > *s.max) {
		return apperr.SchemaViolation(pathOrRoot(path), fmt.Sprintf("value %v out of range %s", f, s.rangeText()))
	}
	return nil
}

func (s *NumberSchema) rangeText() string {
	if s.min == nil || s.max == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s", strconv.FormatFloat(*s.min, 'f', -1, 64), strconv.FormatFloat(*s.max, 'f', -1, 64))
}

func (s *NumberSchema) describe(b *strings.Builder, _ int) {
	b.WriteString("number")
	if r := s.rangeText(); r != "" {
		b.WriteString(" (" + r + ")")
	}
}

// ==================== 数组 ====================

type ArraySchema struct {
	item     Schema
	minItems int
}

// Array 数组，默认至少 1 个元素
func Array(item Schema) *ArraySchema {
	return &ArraySchema{item: item, minItems: 1}
}

func (s *ArraySchema) validate(path string, v any) error {
	arr, ok := v.([]any)
	if !ok {
		return typeMismatch(path, "array", v)
	}
	if len(arr) < s.minItems {
		return apperr.SchemaViolation(pathOrRoot(path), fmt.Sprintf("expected at least %d items, got %d", s.minItems, len(arr)))
	}
	for i, item := range arr {
		if err := s.item.validate(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
			return err
		}
	}
	return nil
}

func (s *ArraySchema) describe(b *strings.Builder, indent int) {
	b.WriteString("[")
	s.item.describe(b, indent)
	b.WriteString(", ...]")
}

// ==================== 对象 ====================

// Field 对象字段
type Field struct {
	Name   string
	Schema Schema
}

// Required 必填字段
func Required(name string, s Schema) Field {
	return Field{Name: name, Schema: s}
}

type ObjectSchema struct {
	fields []Field
}

// Object 对象，未声明的字段忽略
func Object(fields ...Field) *ObjectSchema {
	return &ObjectSchema{fields: fields}
}

func (s *ObjectSchema) validate(path string, v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return typeMismatch(path, "object", v)
	}
	for _, f := range s.fields {
		fieldPath := joinPath(path, f.Name)
		val, present := obj[f.Name]
		if !present || val == nil {
			return apperr.SchemaViolation(fieldPath, "required field missing")
		}
		if err := f.Schema.validate(fieldPath, val); err != nil {
			return err
		}
	}
	return nil
}

func (s *ObjectSchema) describe(b *strings.Builder, indent int) {
	b.WriteString("{\n")
	pad := strings.Repeat("  ", indent+1)
	for i, f := range s.fields {
		b.WriteString(pad)
		b.WriteString(strconv.Quote(f.Name))
		b.WriteString(": ")
		f.Schema.describe(b, indent+1)
		if i < len(s.fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString("}")
}

// ==================== 映射 ====================

type MapSchema struct {
	keys       *StringSchema
	value      Schema
	minEntries int
}

// Map 键受 keys 约束的映射，默认至少 1 项
func Map(keys *StringSchema, value Schema) *MapSchema {
	return &MapSchema{keys: keys, value: value, minEntries: 1}
}

func (s *MapSchema) validate(path string, v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return typeMismatch(path, "object", v)
	}
	if len(obj) < s.minEntries {
		return apperr.SchemaViolation(pathOrRoot(path), fmt.Sprintf("expected at least %d entries, got %d", s.minEntries, len(obj)))
	}
	for k, val := range obj {
		keyPath := joinPath(path, k)
		if !s.keys.Allows(k) {
			return apperr.SchemaViolation(keyPath, "key not allowed")
		}
		if val == nil {
			return apperr.SchemaViolation(keyPath, "null value")
		}
		if err := s.value.validate(keyPath, val); err != nil {
			return err
		}
	}
	return nil
}

func (s *MapSchema) describe(b *strings.Builder, indent int) {
	b.WriteString("{ <key>: ")
	s.value.describe(b, indent)
	b.WriteString(", ... } where <key> is one of ")
	s.keys.describe(b, indent)
}

// ==================== 辅助函数 ====================

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func pathOrRoot(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

func typeMismatch(path, want string, v any) error {
	return apperr.SchemaViolation(pathOrRoot(path), fmt.Sprintf("expected %s, got %s", want, jsonType(v)))
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
