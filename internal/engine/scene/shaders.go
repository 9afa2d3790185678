package scene

// Instanced frame-part shaders. The per-instance world matrix arrives as four
// vec4 attributes at locations 4-7.

const frameVertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec4 aTangent;
layout(location = 3) in vec2 aTexCoord;
layout(location = 4) in vec4 aInstance0;
layout(location = 5) in vec4 aInstance1;
layout(location = 6) in vec4 aInstance2;
layout(location = 7) in vec4 aInstance3;

uniform mat4 uViewProj;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
    mat4 model = mat4(aInstance0, aInstance1, aInstance2, aInstance3);
    vec4 world = model * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = normalize(mat3(model) * aNormal);
    gl_Position = uViewProj * world;
}
`

const frameFragmentShader = `#version 410 core
in vec3 vNormal;
in vec3 vWorldPos;

uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;
uniform vec3 uBaseColor;

out vec4 fragColor;

void main() {
    vec3 n = normalize(vNormal);
    float ndl = max(dot(n, normalize(uLightDir)), 0.0);
    vec3 lit = uBaseColor * (uAmbient + uDiffuse * ndl);
    fragColor = vec4(lit, 1.0);
}
`
