//go:build windows

package webgpu

// WGSL compute shaders. Complex values are stored as vec2<f32> (re, im),
// which matches the memory layout of Go's complex64.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// caddShader performs element-wise complex addition: result = a + b.
const caddShader = `
@group(0) @binding(0) var<storage, read> a: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read> b: array<vec2<f32>>;
@group(0) @binding(2) var<storage, read_write> result: array<vec2<f32>>;

struct Params {
    size: u32,
    n: u32,
    inner: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] + b[idx];
    }
}
`

// fdiffShader computes the forward difference along one axis of a
// row-major array. n is the axis extent, inner the product of the
// extents after it.
const fdiffShader = `
@group(0) @binding(0) var<storage, read> src: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read_write> result: array<vec2<f32>>;

struct Params {
    size: u32,
    n: u32,
    inner: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.size) {
        return;
    }
    let pos = (idx / params.inner) % params.n;
    if (pos + 1u < params.n) {
        result[idx] = src[idx + params.inner] - src[idx];
    } else {
        result[idx] = vec2<f32>(0.0, 0.0);
    }
}
`

// fdiffAdjointShader applies the transpose of fdiffShader.
const fdiffAdjointShader = `
@group(0) @binding(0) var<storage, read> src: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read_write> result: array<vec2<f32>>;

struct Params {
    size: u32,
    n: u32,
    inner: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.size) {
        return;
    }
    let pos = (idx / params.inner) % params.n;
    var v = vec2<f32>(0.0, 0.0);
    if (pos > 0u) {
        v = src[idx - params.inner];
    }
    if (pos + 1u < params.n) {
        v = v - src[idx];
    }
    result[idx] = v;
}
`

// rssShader reduces one axis by root-sum-of-squares. size counts output
// elements; the reduced axis has extent n and inner trailing elements.
const rssShader = `
@group(0) @binding(0) var<storage, read> src: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read_write> result: array<vec2<f32>>;

struct Params {
    size: u32,
    n: u32,
    inner: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.size) {
        return;
    }
    let outer = idx / params.inner;
    let base = outer * params.n * params.inner + idx % params.inner;
    var sum = 0.0;
    for (var k = 0u; k < params.n; k = k + 1u) {
        let v = src[base + k * params.inner];
        sum = sum + dot(v, v);
    }
    result[idx] = vec2<f32>(sqrt(sum), 0.0);
}
`
