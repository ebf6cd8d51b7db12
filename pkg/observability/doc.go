// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xfdmetrics: 文件描述符限制的 OpenTelemetry 指标暴露
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 指标在采集时实时读取，不做缓存
//   - 不支持的平台在注册时报错，不产生空指标
package observability
