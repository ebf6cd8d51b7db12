// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfdlimit: 进程文件描述符上限管理，RLIMIT_NOFILE 查询与提升
//
// 设计原则：
//   - 只封装系统调用差异，不引入后台行为
//   - 失败报告携带出错环节和底层原因
//   - 跨平台兼容，无提升策略的平台如实回答而非报错
package util
